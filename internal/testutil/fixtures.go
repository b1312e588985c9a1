package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1) % 10000
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestPerson(displayName string) *domain.Person {
	return &domain.Person{
		ID:          uuid.New().String(),
		DisplayName: displayName,
		Email:       strings.ToLower(strings.ReplaceAll(displayName, " ", ".")) + "@example.com",
		CreatedAt:   time.Now().UTC(),
	}
}

// Node options
type NodeOption func(*domain.Node)

func WithParent(id string) NodeOption {
	return func(n *domain.Node) {
		n.ParentID = &id
	}
}

func WithOrder(o int) NodeOption {
	return func(n *domain.Node) {
		n.Order = o
	}
}

func WithNodeType(typ domain.NodeType) NodeOption {
	return func(n *domain.Node) {
		n.Type = typ
	}
}

func WithEffort(hours float64, percent int) NodeOption {
	return func(n *domain.Node) {
		n.EffortHours = hours
		n.PercentComplete = percent
	}
}

func WithCost(c float64) NodeOption {
	return func(n *domain.Node) {
		n.Cost = c
	}
}

func WithOwner(personID string) NodeOption {
	return func(n *domain.Node) {
		n.OwnerID = &personID
	}
}

// WithDates takes YYYY-MM-DD strings; "" leaves that end unset.
func WithDates(start, finish string) NodeOption {
	return func(n *domain.Node) {
		n.StartDate = MustDate(start)
		n.FinishDate = MustDate(finish)
	}
}

func WithPredecessors(ids ...string) NodeOption {
	return func(n *domain.Node) {
		n.Predecessors = ids
	}
}

// NewTestNode builds a valid root-level task with order 1.
func NewTestNode(projectID, name string, opts ...NodeOption) domain.Node {
	now := time.Now().UTC()
	n := domain.Node{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Order:     1,
		Name:      name,
		Type:      domain.NodeTask,
		Status:    domain.StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// External task options
type TaskOption func(*domain.ExternalTask)

func WithTaskParent(id string) TaskOption {
	return func(t *domain.ExternalTask) {
		t.ParentID = &id
	}
}

func WithTaskOrder(o int) TaskOption {
	return func(t *domain.ExternalTask) {
		t.Order = o
	}
}

func WithAssignee(personID string) TaskOption {
	return func(t *domain.ExternalTask) {
		t.AssigneeID = &personID
	}
}

func WithDueDate(s string) TaskOption {
	return func(t *domain.ExternalTask) {
		t.DueDate = MustDate(s)
	}
}

func WithEstimate(hours float64) TaskOption {
	return func(t *domain.ExternalTask) {
		t.EstimateHours = hours
	}
}

func WithDone() TaskOption {
	return func(t *domain.ExternalTask) {
		t.Done = true
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.ExternalTask {
	now := time.Now().UTC()
	t := &domain.ExternalTask{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MustDate parses YYYY-MM-DD and panics on bad input. "" yields nil.
func MustDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}
