package domain

// EditorStage is the progress signal of the plan editor.
type EditorStage string

const (
	StageCreating       EditorStage = "creating"
	StagePlanSavedNoDay EditorStage = "plan-saved-no-days"
	StageEditing        EditorStage = "editing"
)

// Direction is the way an item moves by one position.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Delta returns the order offset for the direction.
func (d Direction) Delta() int {
	if d == DirectionUp {
		return -1
	}
	return 1
}

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionUp, DirectionDown:
		return Direction(s), nil
	}
	return "", &ValidationError{Field: "direction", Message: "direction must be up or down"}
}

// PlanRowStatus classifies a plan in the member's list.
type PlanRowStatus string

const (
	PlanUpcoming  PlanRowStatus = "upcoming"
	PlanExpired   PlanRowStatus = "expired"
	PlanCompleted PlanRowStatus = "completed"
)
