package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"cred-vault.backend/internal/domain/entities"
	domainerrors "cred-vault.backend/internal/domain/errors"
	"cred-vault.backend/internal/interfaces/http/middleware"
	"cred-vault.backend/internal/usecases"
)

var handlerTestNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

type stubUow struct{}

func (stubUow) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// vaultStore is a shared in-memory backing store the stub repositories
// operate on, so cascades observe each other's state.
type vaultStore struct {
	users       map[int64]*entities.User
	credentials map[int64]*entities.Credential
	shares      map[int64]*entities.Share
	sessions    map[int64]*entities.EkycSession
	audit       []*entities.AuditLog
	nextID      int64
}

func newVaultStore() *vaultStore {
	return &vaultStore{
		users:       map[int64]*entities.User{},
		credentials: map[int64]*entities.Credential{},
		shares:      map[int64]*entities.Share{},
		sessions:    map[int64]*entities.EkycSession{},
		nextID:      1,
	}
}

func (s *vaultStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

type userRepoStub struct{ store *vaultStore }

func (r userRepoStub) Create(_ context.Context, user *entities.User) error {
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return domainerrors.ErrConflict
		}
	}
	user.ID = r.store.id()
	user.CreatedAt = handlerTestNow
	r.store.users[user.ID] = user
	return nil
}

func (r userRepoStub) GetByID(_ context.Context, id int64) (*entities.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return u, nil
}

func (r userRepoStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r userRepoStub) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := r.store.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (r userRepoStub) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.users[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(r.store.users, id)
	return nil
}

type credentialRepoStub struct{ store *vaultStore }

func (r credentialRepoStub) Create(_ context.Context, credential *entities.Credential) error {
	credential.ID = r.store.id()
	credential.CreatedAt = handlerTestNow
	credential.UpdatedAt = handlerTestNow
	r.store.credentials[credential.ID] = credential
	return nil
}

func (r credentialRepoStub) GetByID(_ context.Context, id int64) (*entities.Credential, error) {
	c, ok := r.store.credentials[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return c, nil
}

func (r credentialRepoStub) UpdateData(_ context.Context, id int64, data, iv []byte) error {
	c, ok := r.store.credentials[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	c.Data = data
	c.IV = iv
	return nil
}

func (r credentialRepoStub) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.credentials[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(r.store.credentials, id)
	return nil
}

func (r credentialRepoStub) DeleteByUser(_ context.Context, userID int64) ([]int64, error) {
	var ids []int64
	for id, c := range r.store.credentials {
		if c.UserID == userID {
			ids = append(ids, id)
			delete(r.store.credentials, id)
		}
	}
	return ids, nil
}

func (r credentialRepoStub) ListForUser(_ context.Context, userID int64, now time.Time) ([]*entities.Credential, error) {
	seen := map[int64]bool{}
	var out []*entities.Credential
	for _, c := range r.store.credentials {
		if c.UserID == userID && !seen[c.ID] {
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	for _, sh := range r.store.shares {
		if sh.GranteeID == userID && sh.EffectiveAt(now) {
			if c, ok := r.store.credentials[sh.CredentialID]; ok && !seen[c.ID] {
				seen[c.ID] = true
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type shareRepoStub struct{ store *vaultStore }

func (r shareRepoStub) Upsert(_ context.Context, share *entities.Share) error {
	for _, s := range r.store.shares {
		if s.CredentialID == share.CredentialID && s.GranteeID == share.GranteeID {
			s.Permission = share.Permission
			s.ExpiresAt = share.ExpiresAt
			share.ID = s.ID
			return nil
		}
	}
	share.ID = r.store.id()
	share.CreatedAt = handlerTestNow
	r.store.shares[share.ID] = share
	return nil
}

func (r shareRepoStub) GetByCredentialAndGrantee(_ context.Context, credentialID, granteeID int64) (*entities.Share, error) {
	for _, s := range r.store.shares {
		if s.CredentialID == credentialID && s.GranteeID == granteeID {
			return s, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r shareRepoStub) Delete(_ context.Context, credentialID, granteeID int64) error {
	for id, s := range r.store.shares {
		if s.CredentialID == credentialID && s.GranteeID == granteeID {
			delete(r.store.shares, id)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (r shareRepoStub) ListByCredential(_ context.Context, credentialID int64) ([]*entities.Share, error) {
	var out []*entities.Share
	for _, s := range r.store.shares {
		if s.CredentialID == credentialID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r shareRepoStub) DeleteByCredential(_ context.Context, credentialID int64) error {
	for id, s := range r.store.shares {
		if s.CredentialID == credentialID {
			delete(r.store.shares, id)
		}
	}
	return nil
}

func (r shareRepoStub) DeleteByGrantee(_ context.Context, granteeID int64) error {
	for id, s := range r.store.shares {
		if s.GranteeID == granteeID {
			delete(r.store.shares, id)
		}
	}
	return nil
}

func (r shareRepoStub) DeleteByOwner(_ context.Context, ownerID int64) error {
	for id, s := range r.store.shares {
		if c, ok := r.store.credentials[s.CredentialID]; ok && c.UserID == ownerID {
			delete(r.store.shares, id)
		}
	}
	return nil
}

type ekycRepoStub struct{ store *vaultStore }

func (r ekycRepoStub) Create(_ context.Context, session *entities.EkycSession) error {
	session.ID = r.store.id()
	session.CreatedAt = handlerTestNow
	session.UpdatedAt = handlerTestNow
	r.store.sessions[session.ID] = session
	return nil
}

func (r ekycRepoStub) GetByID(_ context.Context, id int64) (*entities.EkycSession, error) {
	s, ok := r.store.sessions[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return s, nil
}

func (r ekycRepoStub) UpdateResult(_ context.Context, session *entities.EkycSession) error {
	s, ok := r.store.sessions[session.ID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	s.Status = session.Status
	s.ReferenceID = session.ReferenceID
	s.ResultJSON = session.ResultJSON
	return nil
}

func (r ekycRepoStub) GetLatestByUser(_ context.Context, userID int64) (*entities.EkycSession, error) {
	var latest *entities.EkycSession
	for _, s := range r.store.sessions {
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.ID > latest.ID {
			latest = s
		}
	}
	if latest == nil {
		return nil, domainerrors.ErrNotFound
	}
	return latest, nil
}

func (r ekycRepoStub) DeleteByUser(_ context.Context, userID int64) error {
	for id, s := range r.store.sessions {
		if s.UserID == userID {
			delete(r.store.sessions, id)
		}
	}
	return nil
}

func (r ekycRepoStub) ExpirePendingBefore(_ context.Context, cutoff time.Time) ([]int64, error) {
	var ids []int64
	for _, s := range r.store.sessions {
		if s.Status == entities.EkycStatusPending && s.CreatedAt.Before(cutoff) {
			s.Status = entities.EkycStatusExpired
			ids = append(ids, s.ID)
		}
	}
	return ids, nil
}

type auditRepoStub struct{ store *vaultStore }

func (r auditRepoStub) Create(_ context.Context, entry *entities.AuditLog) error {
	entry.ID = r.store.id()
	entry.CreatedAt = handlerTestNow
	r.store.audit = append(r.store.audit, entry)
	return nil
}

func (r auditRepoStub) Query(_ context.Context, filter entities.AuditQueryFilter, limit, offset int) ([]*entities.AuditLog, int64, error) {
	var matched []*entities.AuditLog
	for _, e := range r.store.audit {
		if filter.UserID != 0 && e.UserID.Int64 != filter.UserID {
			continue
		}
		if filter.ActionPrefix != "" && !strings.HasPrefix(e.Action, filter.ActionPrefix) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r auditRepoStub) NullifyActor(_ context.Context, userID int64) error {
	for _, e := range r.store.audit {
		if e.UserID.Valid && e.UserID.Int64 == userID {
			e.UserID.Valid = false
			e.UserID.Int64 = 0
		}
	}
	return nil
}

func (s *vaultStore) actions() []string {
	out := make([]string, 0, len(s.audit))
	for _, e := range s.audit {
		out = append(out, e.Action)
	}
	return out
}

func (s *vaultStore) seedUser(email string) *entities.User {
	u := &entities.User{ID: s.id(), Email: email, IsActive: true}
	s.users[u.ID] = u
	return u
}

// perform runs one request through a router, impersonating userID via the
// trusted identity header.
func perform(t *testing.T, r *gin.Engine, method, path string, userID int64, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "vault-test/1.0")
	if userID > 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
}

// newVaultRouter wires the stub repositories through the real usecases and
// handlers with the production route layout.
func newVaultRouter(auditReads bool) (*gin.Engine, *vaultStore) {
	store := newVaultStore()
	userRepo := userRepoStub{store}
	credentialRepo := credentialRepoStub{store}
	shareRepo := shareRepoStub{store}
	ekycRepo := ekycRepoStub{store}
	auditRepo := auditRepoStub{store}
	clock := stubClock{now: handlerTestNow}
	uow := stubUow{}

	userUsecase := usecases.NewUserUsecase(userRepo, credentialRepo, shareRepo, ekycRepo, auditRepo, uow)
	credentialUsecase := usecases.NewCredentialUsecase(credentialRepo, shareRepo, userRepo, auditRepo, uow, clock, auditReads)
	shareUsecase := usecases.NewShareUsecase(shareRepo, credentialRepo, userRepo, auditRepo, uow, clock)
	ekycUsecase := usecases.NewEkycUsecase(ekycRepo, userRepo, auditRepo, uow, nil)
	auditUsecase := usecases.NewAuditUsecase(auditRepo)

	userHandler := NewUserHandler(userUsecase)
	credentialHandler := NewCredentialHandler(credentialUsecase)
	shareHandler := NewShareHandler(shareUsecase)
	ekycHandler := NewEkycHandler(ekycUsecase)
	auditHandler := NewAuditHandler(auditUsecase)

	r := gin.New()
	identity := middleware.IdentityMiddleware()

	v1 := r.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("", userHandler.Register)
	users.GET("/:id", identity, userHandler.Get)
	users.POST("/:id/deactivate", identity, userHandler.Deactivate)
	users.DELETE("/:id", identity, userHandler.Delete)

	credentials := v1.Group("/credentials")
	credentials.Use(identity)
	credentials.POST("", credentialHandler.Create)
	credentials.GET("", credentialHandler.List)
	credentials.GET("/:id", credentialHandler.Get)
	credentials.PUT("/:id", credentialHandler.Update)
	credentials.DELETE("/:id", credentialHandler.Delete)
	credentials.POST("/:id/shares", shareHandler.Grant)
	credentials.GET("/:id/shares", shareHandler.List)
	credentials.DELETE("/:id/shares/:granteeId", shareHandler.Revoke)

	ekyc := v1.Group("/ekyc")
	ekyc.Use(identity)
	ekyc.POST("/sessions", ekycHandler.Start)
	ekyc.GET("/sessions/latest", ekycHandler.GetLatest)

	v1.POST("/webhooks/ekyc/sessions/:id/result", ekycHandler.RecordResult)

	audit := v1.Group("/audit")
	audit.Use(identity)
	audit.POST("", auditHandler.Append)
	audit.GET("", auditHandler.Query)

	return r, store
}

func init() {
	gin.SetMode(gin.TestMode)
}
