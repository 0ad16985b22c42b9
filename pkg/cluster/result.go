package cluster

// Member is one distinct original within a group.
type Member struct {
	Value      string
	Count      int
	FirstIndex int
}

// Group is every original sharing one key.
type Group struct {
	Key       string
	Canonical string
	// Members lists distinct originals in order of first appearance.
	Members []Member
	// Size counts all occurrences, duplicates included.
	Size int
}

// Replaced reports how many occurrences differ from the canonical value.
func (g Group) Replaced() int {
	n := 0
	for _, m := range g.Members {
		if m.Value != g.Canonical {
			n += m.Count
		}
	}
	return n
}

// Result is the grouping of one input sequence.
type Result struct {
	// Keys holds the key of each input position.
	Keys []string
	// Groups are ordered by the first appearance of their key.
	Groups []Group

	groupOf []int
}

// Canonical returns the canonical value for every input position.
func (r *Result) Canonical() []string {
	out := make([]string, len(r.groupOf))
	for i, g := range r.groupOf {
		out[i] = r.Groups[g].Canonical
	}
	return out
}

// Replaced reports how many input positions change under Canonical.
func (r *Result) Replaced() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Replaced()
	}
	return n
}

// Build groups originals by the key at the same position. keys must be as
// long as originals.
func Build(originals, keys []string) *Result {
	result := &Result{
		Keys:    keys,
		Groups:  []Group{},
		groupOf: make([]int, len(originals)),
	}
	groupIndex := make(map[string]int)
	memberIndex := make([]map[string]int, 0)
	for i, original := range originals {
		key := keys[i]
		g, ok := groupIndex[key]
		if !ok {
			g = len(result.Groups)
			groupIndex[key] = g
			result.Groups = append(result.Groups, Group{Key: key})
			memberIndex = append(memberIndex, make(map[string]int))
		}
		result.groupOf[i] = g
		group := &result.Groups[g]
		group.Size++
		if m, seen := memberIndex[g][original]; seen {
			group.Members[m].Count++
			continue
		}
		memberIndex[g][original] = len(group.Members)
		group.Members = append(group.Members, Member{Value: original, Count: 1, FirstIndex: i})
	}
	for g := range result.Groups {
		result.Groups[g].Canonical = pick(result.Groups[g].Members)
	}
	return result
}

// MostCommon returns the most frequent value. Among values tied for the
// highest count, the one that appears first wins. An empty input yields "".
func MostCommon(values []string) string {
	counts := make(map[string]int, len(values))
	members := make([]Member, 0, len(values))
	for i, v := range values {
		if m, ok := counts[v]; ok {
			members[m].Count++
			continue
		}
		counts[v] = len(members)
		members = append(members, Member{Value: v, Count: 1, FirstIndex: i})
	}
	return pick(members)
}

// pick expects members in first-appearance order.
func pick(members []Member) string {
	best := -1
	for i, m := range members {
		if best < 0 || m.Count > members[best].Count {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return members[best].Value
}
