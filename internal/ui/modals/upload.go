package modals

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"

	"github.com/zhubert/studydesk/internal/api"
	"github.com/zhubert/studydesk/internal/format"
	"github.com/zhubert/studydesk/internal/models"
)

// =============================================================================
// UploadState - State for the Upload Document modal
// =============================================================================

type UploadState struct {
	path    string
	docType models.DocumentType
	form    *huh.Form
}

func (*UploadState) modalState() {}

func (s *UploadState) Title() string { return "Upload Document" }

func (s *UploadState) Help() string {
	return "Tab: next field  Enter: upload  Esc: cancel"
}

func (s *UploadState) Render() string {
	limit := mutedText("Files up to " + format.FileSize(api.MaxUploadSize) + ".")
	return layout(s.Title(), s.form.View()+"\n"+limit+"\n", s.Help())
}

func (s *UploadState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = updateForm(s.form, msg)
	return s, cmd
}

// GetValues returns the chosen file and category. A leading ~ is expanded.
func (s *UploadState) GetValues() (string, models.DocumentType) {
	return expandHome(strings.TrimSpace(s.path)), s.docType
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func validateUploadPath(v string) error {
	v = expandHome(strings.TrimSpace(v))
	if v == "" {
		return nil
	}
	info, err := os.Stat(v)
	switch {
	case err != nil:
		return fmt.Errorf("file not found")
	case info.IsDir():
		return fmt.Errorf("choose a file, not a directory")
	case info.Size() > api.MaxUploadSize:
		return fmt.Errorf("file is larger than %s", format.FileSize(api.MaxUploadSize))
	}
	return nil
}

// NewUploadState creates the upload form, preselecting docType when valid
func NewUploadState(docType models.DocumentType) *UploadState {
	s := &UploadState{docType: models.DocOther}
	if docType.Valid() {
		s.docType = docType
	}

	typeOptions := make([]huh.Option[models.DocumentType], len(models.DocumentTypes))
	for i, t := range models.DocumentTypes {
		typeOptions[i] = huh.NewOption(t.Label(), t)
	}

	s.form = newForm(ModalInputWidth,
		huh.NewGroup(
			huh.NewInput().
				Title("File").
				Placeholder("~/Documents/passport.pdf").
				CharLimit(ModalInputCharLimit).
				Validate(validateUploadPath).
				Value(&s.path),
			huh.NewSelect[models.DocumentType]().
				Title("Type").
				Options(typeOptions...).
				Height(min(len(typeOptions)+1, ModalMaxVisibleLines)).
				Value(&s.docType),
		),
	)
	return s
}
