package services

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resumesync/internal/models"
)

// WorkspaceService keeps the page state of each browser session in memory.
// Every method returns a copy; callers never hold a reference into the store.
type WorkspaceService interface {
	Get(id uuid.UUID) models.Workspace
	SetDocument(id uuid.UUID, doc *models.Document) models.Workspace
	ClearDocument(id uuid.UUID) models.Workspace
	SetJobDescription(id uuid.UUID, text string) models.Workspace
	Notify(id uuid.UUID, notice models.Notification) models.Workspace
	Take(id uuid.UUID) models.Workspace
	Begin(id uuid.UUID, resumeText, jobDescription string) error
	Finish(id uuid.UUID, report *models.AnalysisReport, notice models.Notification) models.Workspace
	Reset(id uuid.UUID) models.Workspace
	PruneIdle(maxIdle time.Duration) int
}

type workspaceService struct {
	mu         sync.Mutex
	workspaces map[uuid.UUID]*models.Workspace
	now        func() time.Time
}

func NewWorkspaceService() WorkspaceService {
	return &workspaceService{
		workspaces: make(map[uuid.UUID]*models.Workspace),
		now:        time.Now,
	}
}

// Get implements WorkspaceService.
func (s *workspaceService) Get(id uuid.UUID) models.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ws, ok := s.workspaces[id]; ok {
		return snapshot(ws)
	}
	return models.Workspace{ID: id}
}

// SetDocument implements WorkspaceService.
// A pass-through document (one with a warning) leaves the resume text untouched.
func (s *workspaceService) SetDocument(id uuid.UUID, doc *models.Document) models.Workspace {
	return s.update(id, func(ws *models.Workspace) {
		ws.FileName = strings.Clone(doc.FileName)
		if doc.Warning == "" {
			ws.ResumeText = strings.Clone(doc.Text)
		}
		notice := UploadedNotification(doc)
		ws.Notice = &notice
	})
}

// ClearDocument implements WorkspaceService. The extracted text goes with the file.
func (s *workspaceService) ClearDocument(id uuid.UUID) models.Workspace {
	return s.update(id, func(ws *models.Workspace) {
		ws.FileName = ""
		ws.ResumeText = ""
	})
}

// SetJobDescription implements WorkspaceService.
func (s *workspaceService) SetJobDescription(id uuid.UUID, text string) models.Workspace {
	return s.update(id, func(ws *models.Workspace) {
		ws.JobDescription = strings.Clone(text)
	})
}

// Notify implements WorkspaceService.
func (s *workspaceService) Notify(id uuid.UUID, notice models.Notification) models.Workspace {
	return s.update(id, func(ws *models.Workspace) {
		ws.Notice = &notice
	})
}

// Take implements WorkspaceService. It returns the workspace and clears its pending
// notification in one step, so a notification is shown exactly once.
func (s *workspaceService) Take(id uuid.UUID) models.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return models.Workspace{ID: id}
	}

	out := snapshot(ws)
	ws.Notice = nil
	return out
}

// Begin implements WorkspaceService.
func (s *workspaceService) Begin(id uuid.UUID, resumeText, jobDescription string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.getOrCreate(id)
	if ws.Analyzing {
		return ErrAnalysisInProgress
	}

	// Request values may alias the HTTP framework's reusable buffers.
	ws.ResumeText = strings.Clone(resumeText)
	ws.JobDescription = strings.Clone(jobDescription)
	ws.Analyzing = true
	ws.Notice = nil
	ws.UpdatedAt = s.now()

	return nil
}

// Finish implements WorkspaceService. A nil report keeps the previous one.
func (s *workspaceService) Finish(id uuid.UUID, report *models.AnalysisReport, notice models.Notification) models.Workspace {
	return s.update(id, func(ws *models.Workspace) {
		ws.Analyzing = false
		if report != nil {
			ws.Report = report
		}
		ws.Notice = &notice
	})
}

// Reset implements WorkspaceService. Inputs are kept so the user can edit and rerun.
func (s *workspaceService) Reset(id uuid.UUID) models.Workspace {
	return s.update(id, func(ws *models.Workspace) {
		ws.Report = nil
		ws.Notice = nil
	})
}

// PruneIdle implements WorkspaceService.
func (s *workspaceService) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	pruned := 0
	for id, ws := range s.workspaces {
		if ws.Analyzing || ws.UpdatedAt.After(cutoff) {
			continue
		}
		delete(s.workspaces, id)
		pruned++
	}

	if pruned > 0 {
		log.Printf("🧹 Pruned %d idle workspaces", pruned)
	}
	return pruned
}

func (s *workspaceService) update(id uuid.UUID, fn func(ws *models.Workspace)) models.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.getOrCreate(id)
	fn(ws)
	ws.UpdatedAt = s.now()

	return snapshot(ws)
}

func (s *workspaceService) getOrCreate(id uuid.UUID) *models.Workspace {
	ws, ok := s.workspaces[id]
	if !ok {
		ws = &models.Workspace{ID: id}
		s.workspaces[id] = ws
	}
	return ws
}

func snapshot(ws *models.Workspace) models.Workspace {
	out := *ws
	if ws.Notice != nil {
		notice := *ws.Notice
		out.Notice = &notice
	}
	return out
}
