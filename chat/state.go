package chat

import "time"

// SessionState holds the workflow position and collected data for one
// open dialog session. A session lives from dialog open to dialog close;
// reopening the dialog always produces a fresh session.
type SessionState struct {
	SessionID   string         `json:"session_id" bson:"session_id"`
	Source      string         `json:"source" bson:"source"`
	WorkflowID  WorkflowID     `json:"workflow_id" bson:"workflow_id"`
	CurrentStep StepID         `json:"current_step" bson:"current_step"`
	Data        map[string]any `json:"data" bson:"data"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

// NewSessionState creates a fresh session state positioned at the
// workflow's initial step.
func NewSessionState(sessionID, source string, workflowID WorkflowID, initialStep StepID) *SessionState {
	now := time.Now()
	return &SessionState{
		SessionID:   sessionID,
		Source:      source,
		WorkflowID:  workflowID,
		CurrentStep: initialStep,
		Data:        make(map[string]any),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// GetString retrieves a string value from the state data.
func (s *SessionState) GetString(key string) string {
	if v, ok := s.Data[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// GetBool retrieves a boolean value from the state data.
func (s *SessionState) GetBool(key string) bool {
	if v, ok := s.Data[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Set stores a value in the state data.
func (s *SessionState) Set(key string, value any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// MergeData merges additional data into the state.
func (s *SessionState) MergeData(data map[string]any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	for k, v := range data {
		s.Data[k] = v
	}
}
