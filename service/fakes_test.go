// service/fakes_test.go
package service_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/harborworks/causeway-api/audit"
	cw_errors "github.com/harborworks/causeway-api/errors"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "causeway-test-logs")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// In-memory stores standing in for the DAOs. Event handlers run in
// goroutines, so every fake is mutex-guarded. Fail* fields inject errors.

type fakeRoleStore struct {
	mu      sync.Mutex
	roles   map[string]*model.Role
	holders map[string][]string
	nextID  int
}

func newFakeRoleStore() *fakeRoleStore {
	return &fakeRoleStore{
		roles:   make(map[string]*model.Role),
		holders: make(map[string][]string),
	}
}

func (f *fakeRoleStore) Create(ctx context.Context, role model.Role) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.roles {
		if existing.OrganizationID == role.OrganizationID && existing.Name == role.Name {
			return "", cw_errors.ErrRoleNameTaken
		}
	}
	f.nextID++
	role.ID = fmt.Sprintf("role-%d", f.nextID)
	role.CreatedAt = time.Now()
	f.roles[role.ID] = &role
	return role.ID, nil
}

func (f *fakeRoleStore) Update(ctx context.Context, orgID, roleID string, upd model.RoleUpdate) (*model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[roleID]
	if !ok || role.OrganizationID != orgID {
		return nil, cw_errors.ErrRoleNotFound
	}
	if upd.Name != nil {
		for _, existing := range f.roles {
			if existing.ID != roleID && existing.OrganizationID == orgID && existing.Name == *upd.Name {
				return nil, cw_errors.ErrRoleNameTaken
			}
		}
		role.Name = *upd.Name
	}
	if upd.Description != nil {
		role.Description = *upd.Description
	}
	if upd.Scopes != nil {
		role.Scopes = *upd.Scopes
	}
	role.UpdatedAt = time.Now()
	copied := *role
	return &copied, nil
}

func (f *fakeRoleStore) Delete(ctx context.Context, orgID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[roleID]
	if !ok || role.OrganizationID != orgID {
		return cw_errors.ErrRoleNotFound
	}
	if len(f.holders[roleID]) > 0 {
		return cw_errors.ErrRoleInUse
	}
	delete(f.roles, roleID)
	return nil
}

func (f *fakeRoleStore) Get(ctx context.Context, orgID, roleID string) (*model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[roleID]
	if !ok || role.OrganizationID != orgID {
		return nil, cw_errors.ErrRoleNotFound
	}
	copied := *role
	return &copied, nil
}

func (f *fakeRoleStore) GetByIDs(ctx context.Context, orgID string, roleIDs []string) ([]*model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Role
	for _, id := range roleIDs {
		if role, ok := f.roles[id]; ok && role.OrganizationID == orgID {
			copied := *role
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRoleStore) List(ctx context.Context, orgID string, limit, offset int) ([]*model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Role
	for _, role := range f.roles {
		if role.OrganizationID == orgID {
			copied := *role
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRoleStore) Holders(ctx context.Context, orgID, roleID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.holders[roleID]...), nil
}

type fakeUserStore struct {
	mu            sync.Mutex
	users         map[string]*model.User
	FailCreate    error
	FailSetScopes error
	FailDelete    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user model.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailCreate != nil {
		return "", f.FailCreate
	}
	f.users[user.ID] = &user
	return user.ID, nil
}

func (f *fakeUserStore) Update(ctx context.Context, orgID, userID string, upd model.UserUpdate) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok || user.OrganizationID != orgID {
		return nil, cw_errors.ErrUserNotFound
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Roles != nil {
		user.Roles = *upd.Roles
	}
	if upd.Status != nil {
		user.Status = *upd.Status
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) SetScopes(ctx context.Context, orgID, userID string, scopes []model.Scope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailSetScopes != nil {
		return f.FailSetScopes
	}
	if user, ok := f.users[userID]; ok {
		user.Scopes = scopes
	}
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, orgID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailDelete != nil {
		return f.FailDelete
	}
	if _, ok := f.users[userID]; !ok {
		return cw_errors.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUserStore) Get(ctx context.Context, orgID, userID string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok || user.OrganizationID != orgID {
		return nil, cw_errors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) List(ctx context.Context, orgID string, limit, offset int) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.User
	for _, user := range f.users {
		if user.OrganizationID == orgID {
			copied := *user
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeClaimsStore struct {
	mu         sync.Mutex
	claims     map[string]*model.Claims
	FailSet    error
	FailSetFor map[string]error
}

func newFakeClaimsStore() *fakeClaimsStore {
	return &fakeClaimsStore{
		claims:     make(map[string]*model.Claims),
		FailSetFor: make(map[string]error),
	}
}

func (f *fakeClaimsStore) Set(ctx context.Context, claims model.Claims) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailSet != nil {
		return f.FailSet
	}
	if err := f.FailSetFor[claims.PrincipalID]; err != nil {
		return err
	}
	f.claims[claims.PrincipalID] = &claims
	return nil
}

func (f *fakeClaimsStore) Get(ctx context.Context, principalID string) (*model.Claims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	claims, ok := f.claims[principalID]
	if !ok {
		return nil, nil
	}
	copied := *claims
	return &copied, nil
}

func (f *fakeClaimsStore) Delete(ctx context.Context, principalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.claims, principalID)
	return nil
}

type fakeTemplateStore struct {
	mu        sync.Mutex
	templates map[string]*model.Template
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{templates: make(map[string]*model.Template)}
}

func (f *fakeTemplateStore) Create(ctx context.Context, template model.Template) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if template.ID == "" {
		template.ID = "tpl-" + template.Name
	}
	f.templates[template.ID] = &template
	return template.ID, nil
}

func (f *fakeTemplateStore) Get(ctx context.Context, orgID, templateID string) (*model.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	template, ok := f.templates[templateID]
	if !ok || template.OrganizationID != orgID {
		return nil, cw_errors.ErrTemplateNotFound
	}
	copied := *template
	return &copied, nil
}

func (f *fakeTemplateStore) List(ctx context.Context, orgID string, limit, offset int) ([]*model.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Template
	for _, template := range f.templates {
		if template.OrganizationID == orgID {
			copied := *template
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeSubmissionStore struct {
	mu          sync.Mutex
	submissions map[string]*model.Submission
	nextID      int
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{submissions: make(map[string]*model.Submission)}
}

func (f *fakeSubmissionStore) Create(ctx context.Context, submission model.Submission) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	submission.ID = fmt.Sprintf("sub-%d", f.nextID)
	f.submissions[submission.ID] = &submission
	return submission.ID, nil
}

func (f *fakeSubmissionStore) Approve(ctx context.Context, orgID, submissionID string, record model.ApprovalRecord, processingHours float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	submission, ok := f.submissions[submissionID]
	if !ok || submission.OrganizationID != orgID {
		return cw_errors.ErrSubmissionNotFound
	}
	switch submission.Status {
	case model.SubmissionStatusApproved:
		return cw_errors.ErrAlreadyApproved
	case model.SubmissionStatusRejected:
		return cw_errors.ErrApproveAfterReject
	}
	submission.Status = model.SubmissionStatusApproved
	submission.Approval = &record
	submission.ProcessingHours = processingHours
	return nil
}

func (f *fakeSubmissionStore) Reject(ctx context.Context, orgID, submissionID string, record model.RejectionRecord, processingHours float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	submission, ok := f.submissions[submissionID]
	if !ok || submission.OrganizationID != orgID {
		return cw_errors.ErrSubmissionNotFound
	}
	switch submission.Status {
	case model.SubmissionStatusRejected:
		return cw_errors.ErrAlreadyRejected
	case model.SubmissionStatusApproved:
		return cw_errors.ErrRejectAfterApprove
	}
	submission.Status = model.SubmissionStatusRejected
	submission.Rejection = &record
	submission.ProcessingHours = processingHours
	return nil
}

func (f *fakeSubmissionStore) Get(ctx context.Context, orgID, submissionID string) (*model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	submission, ok := f.submissions[submissionID]
	if !ok || submission.OrganizationID != orgID {
		return nil, cw_errors.ErrSubmissionNotFound
	}
	copied := *submission
	return &copied, nil
}

func (f *fakeSubmissionStore) List(ctx context.Context, orgID, status string, limit, offset int) ([]*model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Submission
	for _, submission := range f.submissions {
		if submission.OrganizationID != orgID {
			continue
		}
		if status != "" && submission.Status != status {
			continue
		}
		copied := *submission
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeSubmissionStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submissions)
}

type fakeAnalyticsStore struct {
	mu          sync.Mutex
	submissions int
	decisions   map[string]int
	lastHours   float64
	samples     int
	rawTemplate map[string]string
	rawDaily    map[string]string
}

func newFakeAnalyticsStore() *fakeAnalyticsStore {
	return &fakeAnalyticsStore{decisions: make(map[string]int)}
}

func (f *fakeAnalyticsStore) RecordSubmission(ctx context.Context, orgID, templateID, actorID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions++
	return nil
}

func (f *fakeAnalyticsStore) RecordDecision(ctx context.Context, orgID, templateID, actorID, status string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decisions[status]++
	return nil
}

func (f *fakeAnalyticsStore) RecordProcessingTime(ctx context.Context, orgID, templateID string, hours float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastHours = hours
	f.samples++
	return nil
}

func (f *fakeAnalyticsStore) TemplateStats(ctx context.Context, orgID, templateID string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rawTemplate == nil {
		return map[string]string{}, nil
	}
	return f.rawTemplate, nil
}

func (f *fakeAnalyticsStore) DailyStats(ctx context.Context, orgID string, day time.Time) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rawDaily == nil {
		return map[string]string{}, nil
	}
	return f.rawDaily, nil
}

type fakeAuditService struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (f *fakeAuditService) Record(ctx context.Context, entry audit.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
}

func (f *fakeAuditService) Search(ctx context.Context, q audit.Query) ([]audit.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]audit.Entry(nil), f.entries...), nil
}

func (f *fakeAuditService) byAction(action string) []audit.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []audit.Entry
	for _, e := range f.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
