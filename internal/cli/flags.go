package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/spf13/pflag"
)

// nodeFlags are the editable node attributes shared by `node add` and
// `node update`. Only flags the user actually passed end up in the patch.
type nodeFlags struct {
	name, parent, nodeType, owner, start, finish, status string
	effort, cost                                         float64
	percent                                              int
	predecessors                                         []string
}

func (f *nodeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Node name")
	fs.StringVar(&f.parent, "parent", "", "Parent node id or code (empty for root)")
	fs.StringVar(&f.nodeType, "type", "", "Node type (phase|deliverable|work_package|task|milestone)")
	fs.StringVar(&f.owner, "owner", "", "Owner person ID (empty to clear)")
	fs.StringVar(&f.start, "start", "", "Start date YYYY-MM-DD (empty to clear)")
	fs.StringVar(&f.finish, "finish", "", "Finish date YYYY-MM-DD (empty to clear)")
	fs.StringVar(&f.status, "status", "", "Status (not_started|in_progress|done)")
	fs.Float64Var(&f.effort, "effort", 0, "Effort in hours")
	fs.Float64Var(&f.cost, "cost", 0, "Cost")
	fs.IntVar(&f.percent, "percent", 0, "Percent complete (0-100)")
	fs.StringSliceVar(&f.predecessors, "pred", nil, "Predecessor node IDs, comma separated")
}

// patch builds a NodePatch from the flags that were set. resolveParent maps
// a parent reference to a node id.
func (f *nodeFlags) patch(fs *pflag.FlagSet, resolveParent func(ref string) (string, error)) (domain.NodePatch, error) {
	var p domain.NodePatch
	if fs.Changed("name") {
		p.Name = &f.name
	}
	if fs.Changed("parent") {
		id := ""
		if strings.TrimSpace(f.parent) != "" {
			var err error
			if id, err = resolveParent(f.parent); err != nil {
				return p, fmt.Errorf("resolving parent: %w", err)
			}
		}
		p.ParentID = &id
	}
	if fs.Changed("type") {
		t := domain.NodeType(f.nodeType)
		p.Type = &t
	}
	if fs.Changed("owner") {
		p.OwnerID = &f.owner
	}
	if fs.Changed("status") {
		s := domain.NodeStatus(f.status)
		p.Status = &s
	}
	if fs.Changed("effort") {
		p.EffortHours = &f.effort
	}
	if fs.Changed("cost") {
		p.Cost = &f.cost
	}
	if fs.Changed("percent") {
		p.PercentComplete = &f.percent
	}
	if fs.Changed("pred") {
		p.Predecessors = &f.predecessors
	}
	var err error
	if fs.Changed("start") {
		if p.StartDate, err = flagDate("start", f.start); err != nil {
			return p, err
		}
	}
	if fs.Changed("finish") {
		if p.FinishDate, err = flagDate("finish", f.finish); err != nil {
			return p, err
		}
	}
	return p, nil
}

func flagDate(name, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return &time.Time{}, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}
