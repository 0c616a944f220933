package domain

import (
	"fmt"
	"strings"
)

// WorkflowKind identifies one of the two user task flows. The zero value means
// no workflow is selected.
type WorkflowKind string

const (
	WorkflowNone        WorkflowKind = ""
	WorkflowImageUpload WorkflowKind = "image-upload"
	WorkflowProductURL  WorkflowKind = "product-url"
)

// WorkflowKinds lists the selectable workflows in display order.
var WorkflowKinds = []WorkflowKind{WorkflowImageUpload, WorkflowProductURL}

// ParseWorkflowKind resolves a selection identifier.
func ParseWorkflowKind(s string) (WorkflowKind, error) {
	switch WorkflowKind(strings.ToLower(strings.TrimSpace(s))) {
	case WorkflowImageUpload:
		return WorkflowImageUpload, nil
	case WorkflowProductURL:
		return WorkflowProductURL, nil
	default:
		return WorkflowNone, fmt.Errorf("%w: %q", ErrUnknownWorkflow, s)
	}
}

func (k WorkflowKind) String() string {
	if k == WorkflowNone {
		return "none"
	}
	return string(k)
}
