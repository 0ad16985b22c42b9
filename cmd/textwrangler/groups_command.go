package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"textwrangler/internal/logging"
	"textwrangler/pkg/cluster"
)

type groupRecord struct {
	Key       string         `json:"key"`
	Canonical string         `json:"canonical"`
	Size      int            `json:"size"`
	Members   []memberRecord `json:"members"`
}

type memberRecord struct {
	Value      string `json:"value"`
	Count      int    `json:"count"`
	FirstIndex int    `json:"first_index"`
}

func newGroupsCommand(ctx *commandContext) *cobra.Command {
	var (
		input   inputOptions
		minSize int
		bySize  bool
	)

	cmd := &cobra.Command{
		Use:   "groups [files...]",
		Short: "Report fingerprint groups and their variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, source, err := input.readInput(cmd, args)
			if err != nil {
				return err
			}
			t, logger, err := ctx.transformer(cmd)
			if err != nil {
				return err
			}
			result, err := t.Groups(lines)
			if err != nil {
				return err
			}
			groups := selectGroups(result.Groups, minSize, bySize)
			logger.Info("groups computed",
				logging.String(logging.FieldSource, source),
				logging.Int("groups", len(result.Groups)),
				logging.Int("shown", len(groups)),
			)

			if ctx.flags.json {
				return writeJSON(cmd, groupRecords(groups))
			}
			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintf(out, "No groups with at least %d members\n", minSize)
				return nil
			}
			fmt.Fprintln(out, renderGroups(groups, shouldColorize(out)))
			fmt.Fprintf(out, "%d of %d groups shown, %d lines would change\n",
				len(groups), len(result.Groups), result.Replaced())
			return nil
		},
	}
	input.register(cmd)
	cmd.Flags().IntVar(&minSize, "min-size", 2, "Only show groups with at least this many lines")
	cmd.Flags().BoolVar(&bySize, "by-size", false, "Sort groups by size, largest first")
	return cmd
}

func selectGroups(groups []cluster.Group, minSize int, bySize bool) []cluster.Group {
	selected := make([]cluster.Group, 0, len(groups))
	for _, g := range groups {
		if g.Size >= minSize {
			selected = append(selected, g)
		}
	}
	if bySize {
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].Size > selected[j].Size
		})
	}
	return selected
}

func groupRecords(groups []cluster.Group) []groupRecord {
	records := make([]groupRecord, 0, len(groups))
	for _, g := range groups {
		members := make([]memberRecord, len(g.Members))
		for i, m := range g.Members {
			members[i] = memberRecord{Value: m.Value, Count: m.Count, FirstIndex: m.FirstIndex}
		}
		records = append(records, groupRecord{Key: g.Key, Canonical: g.Canonical, Size: g.Size, Members: members})
	}
	return records
}

func renderGroups(groups []cluster.Group, colorize bool) string {
	rows := make([][]string, 0, len(groups))
	for i, g := range groups {
		variants := make([]string, 0, len(g.Members))
		for _, m := range g.Members {
			if m.Value == g.Canonical {
				continue
			}
			variants = append(variants, fmt.Sprintf("%s (%d)", m.Value, m.Count))
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			g.Canonical,
			strconv.Itoa(g.Size),
			strings.Join(variants, "\n"),
			g.Key,
		})
	}
	return renderTable(
		[]string{"#", "Canonical", "Size", "Variants", "Key"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
		colorize,
	)
}
