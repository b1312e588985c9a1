package domain

type NodeType string

const (
	NodePhase       NodeType = "phase"
	NodeDeliverable NodeType = "deliverable"
	NodeWorkPackage NodeType = "work_package"
	NodeTask        NodeType = "task"
	NodeMilestone   NodeType = "milestone"
)

type NodeStatus string

const (
	StatusNotStarted NodeStatus = "not_started"
	StatusInProgress NodeStatus = "in_progress"
	StatusDone       NodeStatus = "done"
)

// Direction selects the neighbour a reorder swaps with.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)
