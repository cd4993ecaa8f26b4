package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resumesync/internal/models"
)

func newTestWorkspaces(clock *time.Time) *workspaceService {
	svc := NewWorkspaceService().(*workspaceService)
	svc.now = func() time.Time { return *clock }
	return svc
}

func TestWorkspaceGetUnknownIsEmpty(t *testing.T) {
	clock := time.Now()
	svc := newTestWorkspaces(&clock)
	id := uuid.New()

	ws := svc.Get(id)

	assert.Equal(t, id, ws.ID)
	assert.Empty(t, ws.ResumeText)
	assert.Nil(t, ws.Report)
}

func TestWorkspaceSetDocument(t *testing.T) {
	clock := time.Now()
	svc := newTestWorkspaces(&clock)
	id := uuid.New()

	ws := svc.SetDocument(id, &models.Document{FileName: "cv.pdf", MediaType: models.MediaTypePDF, Text: "Jane Doe"})
	assert.Equal(t, "cv.pdf", ws.FileName)
	assert.Equal(t, "Jane Doe", ws.ResumeText)
	require.NotNil(t, ws.Notice)
	assert.Equal(t, TitleResumeUploaded, ws.Notice.Title)

	// A pass-through document keeps the text already in the workspace.
	ws = svc.SetDocument(id, &models.Document{FileName: "cv.docx", MediaType: models.MediaTypeDOCX, Warning: "cv.docx ready"})
	assert.Equal(t, "cv.docx", ws.FileName)
	assert.Equal(t, "Jane Doe", ws.ResumeText)

	// An empty text file is still a document and replaces the text.
	ws = svc.SetDocument(id, &models.Document{FileName: "blank.txt", MediaType: models.MediaTypeText})
	assert.Equal(t, "blank.txt", ws.FileName)
	assert.Empty(t, ws.ResumeText)

	svc.SetDocument(id, &models.Document{FileName: "cv.pdf", MediaType: models.MediaTypePDF, Text: "Jane Doe"})
	ws = svc.ClearDocument(id)
	assert.Empty(t, ws.FileName)
	assert.Empty(t, ws.ResumeText)
}

func TestWorkspaceStoresOwnCopyOfInputs(t *testing.T) {
	clock := time.Now()
	svc := newTestWorkspaces(&clock)
	id := uuid.New()

	// Simulates request strings that alias a buffer the server reuses.
	buf := []byte("Jane Doe, Go engineer|Senior Go developer")
	resume := unsafe.String(&buf[0], 21)
	jd := unsafe.String(&buf[22], 19)

	require.NoError(t, svc.Begin(id, resume, jd))
	for i := range buf {
		buf[i] = 'X'
	}

	ws := svc.Get(id)
	assert.Equal(t, "Jane Doe, Go engineer", ws.ResumeText)
	assert.Equal(t, "Senior Go developer", ws.JobDescription)
}

func TestWorkspaceBeginRejectsSecondAnalysis(t *testing.T) {
	clock := time.Now()
	svc := newTestWorkspaces(&clock)
	id := uuid.New()

	require.NoError(t, svc.Begin(id, "resume", "jd"))
	assert.True(t, svc.Get(id).Analyzing)

	err := svc.Begin(id, "resume", "jd")
	assert.True(t, errors.Is(err, ErrAnalysisInProgress))

	report := &models.AnalysisReport{ID: uuid.New()}
	ws := svc.Finish(id, report, AnalysisCompleteNotification())
	assert.False(t, ws.Analyzing)
	assert.Same(t, report, ws.Report)
	assert.Equal(t, "resume", ws.ResumeText)
	assert.Equal(t, "jd", ws.JobDescription)

	assert.NoError(t, svc.Begin(id, "resume", "jd"))
}

func TestWorkspaceBeginIsExclusiveUnderContention(t *testing.T) {
	clock := time.Now()
	svc := newTestWorkspaces(&clock)
	id := uuid.New()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Begin(id, "resume", "jd") == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
}

func TestWorkspaceFailedAnalysisKeepsPreviousReport(t *testing.T) {
	clock := time.Now()
	svc := newTestWorkspaces(&clock)
	id := uuid.New()
	previous := &models.AnalysisReport{ID: uuid.New()}

	require.NoError(t, svc.Begin(id, "resume", "jd"))
	svc.Finish(id, previous, AnalysisCompleteNotification())

	require.NoError(t, svc.Begin(id, "resume", "jd"))
	ws := svc.Finish(id, nil, NotificationFor(&UpstreamError{Status: 503}))

	assert.Same(t, previous, ws.Report)
	assert.False(t, ws.Analyzing)
	require.NotNil(t, ws.Notice)
	assert.Equal(t, TitleAnalysisFailed, ws.Notice.Title)
}

func TestWorkspaceResetKeepsInputs(t *testing.T) {
	clock := time.Now()
	svc := newTestWorkspaces(&clock)
	id := uuid.New()

	require.NoError(t, svc.Begin(id, "resume", "jd"))
	svc.Finish(id, &models.AnalysisReport{ID: uuid.New()}, AnalysisCompleteNotification())

	ws := svc.Reset(id)

	assert.Nil(t, ws.Report)
	assert.Nil(t, ws.Notice)
	assert.Equal(t, "resume", ws.ResumeText)
	assert.Equal(t, "jd", ws.JobDescription)
}

func TestWorkspaceSnapshotsAreCopies(t *testing.T) {
	clock := time.Now()
	svc := newTestWorkspaces(&clock)
	id := uuid.New()

	ws := svc.Notify(id, models.Notification{Title: "one"})
	ws.Notice.Title = "changed"
	ws.ResumeText = "changed"

	stored := svc.Get(id)
	assert.Equal(t, "one", stored.Notice.Title)
	assert.Empty(t, stored.ResumeText)

}

func TestWorkspaceTakeClearsNotice(t *testing.T) {
	clock := time.Now()
	svc := newTestWorkspaces(&clock)
	id := uuid.New()

	assert.Nil(t, svc.Take(id).Notice)

	svc.SetJobDescription(id, "jd")
	svc.Notify(id, models.Notification{Title: "one"})

	ws := svc.Take(id)
	require.NotNil(t, ws.Notice)
	assert.Equal(t, "one", ws.Notice.Title)
	assert.Equal(t, "jd", ws.JobDescription)

	assert.Nil(t, svc.Take(id).Notice)
	assert.Nil(t, svc.Get(id).Notice)
}

func TestWorkspaceTakeShowsEachNoticeOnce(t *testing.T) {
	clock := time.Now()
	svc := newTestWorkspaces(&clock)
	id := uuid.New()
	svc.Notify(id, models.Notification{Title: "done"})

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Take(id).Notice != nil {
				mu.Lock()
				seen++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, seen)
}

func TestWorkspacePruneIdle(t *testing.T) {
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestWorkspaces(&clock)

	stale := uuid.New()
	busy := uuid.New()
	fresh := uuid.New()

	svc.SetJobDescription(stale, "old")
	require.NoError(t, svc.Begin(busy, "resume", "jd"))

	clock = clock.Add(3 * time.Hour)
	svc.SetJobDescription(fresh, "new")

	pruned := svc.PruneIdle(2 * time.Hour)

	assert.Equal(t, 1, pruned)
	assert.Empty(t, svc.Get(stale).JobDescription)
	assert.True(t, svc.Get(busy).Analyzing)
	assert.Equal(t, "new", svc.Get(fresh).JobDescription)
}

func TestJanitorStopsCleanly(t *testing.T) {
	svc := NewWorkspaceService()
	j := NewJanitor(svc, time.Hour, 10*time.Millisecond)

	j.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	j.Stop()
	j.Stop()
}

func TestJanitorDisabled(t *testing.T) {
	j := NewJanitor(NewWorkspaceService(), 0, 0)

	j.Start(context.Background())
	j.Stop()
}
