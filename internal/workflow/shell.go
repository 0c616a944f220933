package workflow

import (
	"fmt"
	"sync"

	"adstudio/internal/domain"
)

// Shell tracks which workflow is active for one browser session and owns the
// active form. Leaving a workflow discards its form state without asking.
type Shell struct {
	mu      sync.Mutex
	deps    Deps
	active  domain.WorkflowKind
	upload  *ImageUpload
	product *ProductURL
}

func NewShell(deps Deps) *Shell {
	return &Shell{deps: deps}
}

// Active returns the selected workflow, or domain.WorkflowNone.
func (s *Shell) Active() domain.WorkflowKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Select activates kind with a fresh form. Re-selecting the active workflow
// keeps its state.
func (s *Shell) Select(kind domain.WorkflowKind) error {
	switch kind {
	case domain.WorkflowImageUpload, domain.WorkflowProductURL:
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownWorkflow, string(kind))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == kind {
		return nil
	}
	s.closeLocked()
	s.active = kind
	switch kind {
	case domain.WorkflowImageUpload:
		s.upload = newImageUpload(s.deps)
	case domain.WorkflowProductURL:
		s.product = newProductURL(s.deps)
	}
	return nil
}

// Back clears the selection, cancelling any request the active form has in
// flight.
func (s *Shell) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	s.active = domain.WorkflowNone
}

// Close releases the active form. It is called when the session is evicted.
func (s *Shell) Close() {
	s.Back()
}

func (s *Shell) closeLocked() {
	if s.upload != nil {
		s.upload.close()
		s.upload = nil
	}
	if s.product != nil {
		s.product.close()
		s.product = nil
	}
}

// ImageUpload returns the image-upload form if it is the active workflow.
func (s *Shell) ImageUpload() (*ImageUpload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != domain.WorkflowImageUpload || s.upload == nil {
		return nil, domain.ErrNoWorkflowActive
	}
	return s.upload, nil
}

// ProductURL returns the product-URL form if it is the active workflow.
func (s *Shell) ProductURL() (*ProductURL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != domain.WorkflowProductURL || s.product == nil {
		return nil, domain.ErrNoWorkflowActive
	}
	return s.product, nil
}

// UploadSnapshot is the JSON view of UploadState; the file bytes and preview
// are reduced to metadata.
type UploadSnapshot struct {
	FileName   string                     `json:"file_name,omitempty"`
	FileType   string                     `json:"file_type,omitempty"`
	FileBytes  int                        `json:"file_bytes,omitempty"`
	HasPreview bool                       `json:"has_preview"`
	Loading    bool                       `json:"loading"`
	Result     *domain.MotionEffectResult `json:"result,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

// URLSnapshot is the JSON view of URLState.
type URLSnapshot struct {
	ProductURL           string           `json:"product_url"`
	URLValidationMessage string           `json:"url_validation_message,omitempty"`
	Loading              bool             `json:"loading"`
	LoadingStage         string           `json:"loading_stage,omitempty"`
	Result               *domain.AdResult `json:"result,omitempty"`
	Error                string           `json:"error,omitempty"`
}

// Snapshot is a point-in-time view of a Shell.
type Snapshot struct {
	Active      string          `json:"active"`
	ImageUpload *UploadSnapshot `json:"image_upload,omitempty"`
	ProductURL  *URLSnapshot    `json:"product_url,omitempty"`
}

// Loading reports whether the active form has a request in flight.
func (s Snapshot) Loading() bool {
	return (s.ImageUpload != nil && s.ImageUpload.Loading) || (s.ProductURL != nil && s.ProductURL.Loading)
}

func (s *Shell) Snapshot() Snapshot {
	s.mu.Lock()
	active, upload, product := s.active, s.upload, s.product
	s.mu.Unlock()

	snap := Snapshot{Active: active.String()}
	if upload != nil {
		st := upload.State()
		us := &UploadSnapshot{
			HasPreview: st.PreviewDataURI != "",
			Loading:    st.Loading,
			Result:     st.Result,
			Error:      st.Error,
		}
		if st.File != nil {
			us.FileName = st.File.Name
			us.FileType = st.File.ContentType
			us.FileBytes = len(st.File.Data)
		}
		snap.ImageUpload = us
	}
	if product != nil {
		st := product.State()
		snap.ProductURL = &URLSnapshot{
			ProductURL:           st.ProductURL,
			URLValidationMessage: st.URLValidationMessage,
			Loading:              st.Loading,
			LoadingStage:         st.LoadingStage,
			Result:               st.Result,
			Error:                st.Error,
		}
	}
	return snap
}
