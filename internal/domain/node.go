package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Node is one flat WBS record. The tree shape lives entirely in ParentID and
// Order; codes and rollups are derived on read.
type Node struct {
	ID              string   `validate:"required"`
	ProjectID       string   `validate:"required"`
	ParentID        *string  // nil means root level
	Order           int      // position among siblings, 1-based once renumbered
	Name            string   `validate:"required,max=200"`
	Type            NodeType `validate:"required,oneof=phase deliverable work_package task milestone"`
	OwnerID         *string
	StartDate       *time.Time // calendar date, no time component
	FinishDate      *time.Time
	EffortHours     float64    `validate:"gte=0"`
	Cost            float64    `validate:"gte=0"`
	PercentComplete int        `validate:"gte=0,lte=100"`
	Status          NodeStatus `validate:"required,oneof=not_started in_progress done"`
	Predecessors    []string   `validate:"dive,required"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ParentKey returns the sibling-group key: "" for root-level nodes.
func (n *Node) ParentKey() string {
	if n.ParentID == nil {
		return ""
	}
	return *n.ParentID
}

// IsRoot reports whether the node sits at the top level of its project.
func (n *Node) IsRoot() bool {
	return n.ParentID == nil
}

// Clone returns a copy that shares no pointers or slices with n.
func (n Node) Clone() Node {
	c := n
	if n.ParentID != nil {
		v := *n.ParentID
		c.ParentID = &v
	}
	if n.OwnerID != nil {
		v := *n.OwnerID
		c.OwnerID = &v
	}
	if n.StartDate != nil {
		v := *n.StartDate
		c.StartDate = &v
	}
	if n.FinishDate != nil {
		v := *n.FinishDate
		c.FinishDate = &v
	}
	if n.Predecessors != nil {
		c.Predecessors = append([]string(nil), n.Predecessors...)
	}
	return c
}

// Validate checks field ranges and enum membership. All failures are joined
// into a single error wrapping ErrInvalidNode.
func (n *Node) Validate() error {
	var msgs []string

	if err := validate.Struct(n); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating node: %w", err)
		}
		for _, fe := range verrs {
			msgs = append(msgs, describeFieldError(fe))
		}
	}

	if n.StartDate != nil && n.FinishDate != nil && n.FinishDate.Before(*n.StartDate) {
		msgs = append(msgs, fmt.Sprintf("finish_date %s is before start_date %s",
			n.FinishDate.Format(DateLayout), n.StartDate.Format(DateLayout)))
	}

	if n.ParentID != nil && *n.ParentID == n.ID {
		msgs = append(msgs, "parent_id must not reference the node itself")
	}

	if len(msgs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidNode, strings.Join(msgs, "; "))
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := snakeCase(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value()))
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// NodePatch carries the fields a caller wants to set. Nil means "leave as is".
// For clearable fields an empty value clears: ParentID "" moves the node to
// the root, OwnerID "" removes the owner, a zero date removes the date.
type NodePatch struct {
	ParentID        *string
	Name            *string
	Type            *NodeType
	OwnerID         *string
	StartDate       *time.Time
	FinishDate      *time.Time
	EffortHours     *float64
	Cost            *float64
	PercentComplete *int
	Status          *NodeStatus
	Predecessors    *[]string
}

// ApplyTo merges every supplied field except ParentID onto n. Reparenting is
// structural and handled by the mutation operators.
func (p NodePatch) ApplyTo(n *Node) {
	if p.Name != nil {
		n.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.OwnerID != nil {
		n.OwnerID = StrPtrOrNil(*p.OwnerID)
	}
	if p.StartDate != nil {
		n.StartDate = DatePtrOrNil(*p.StartDate)
	}
	if p.FinishDate != nil {
		n.FinishDate = DatePtrOrNil(*p.FinishDate)
	}
	if p.EffortHours != nil {
		n.EffortHours = *p.EffortHours
	}
	if p.Cost != nil {
		n.Cost = *p.Cost
	}
	if p.PercentComplete != nil {
		n.PercentComplete = *p.PercentComplete
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
	if p.Predecessors != nil {
		n.Predecessors = append([]string(nil), (*p.Predecessors)...)
	}
}

// TargetParent resolves the patch's ParentID into a sibling-group key and
// reports whether the patch touches the parent at all.
func (p NodePatch) TargetParent() (key string, set bool) {
	if p.ParentID == nil {
		return "", false
	}
	return *p.ParentID, true
}
