package services

import (
	"context"
	"database/sql"
	"time"

	"webvault/internal/common"
	"webvault/internal/dbx"
	"webvault/internal/server/models"
	"webvault/internal/server/repositories/folders"
	"webvault/internal/server/repositories/pages"
	"webvault/internal/server/repositories/shares"
	"webvault/internal/server/repositories/stores"
	"webvault/internal/server/repositories/tags"
)

// fakeRepoManager vends the in-memory fakes below regardless of the DBTX
// passed in, so services can run without a database handle.
type fakeRepoManager struct {
	pages   *fakePagesRepo
	tags    *fakeTagsRepo
	folders *fakeFoldersRepo
	shares  *fakeSharesRepo
	stores  *fakeStoresRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		pages:   &fakePagesRepo{byID: map[int64]*models.Page{}},
		tags:    &fakeTagsRepo{},
		folders: &fakeFoldersRepo{},
		shares:  &fakeSharesRepo{},
		stores:  &fakeStoresRepo{},
	}
}

func (m *fakeRepoManager) Pages(dbx.DBTX) pages.Repository { return m.pages }
func (m *fakeRepoManager) Tags(dbx.DBTX) tags.Repository { return m.tags }
func (m *fakeRepoManager) Folders(dbx.DBTX) folders.Repository { return m.folders }
func (m *fakeRepoManager) Shares(dbx.DBTX) shares.Repository { return m.shares }
func (m *fakeRepoManager) Stores(dbx.DBTX) stores.Repository { return m.stores }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

// ---------- stores ----------

type fakeStoresRepo struct {
	token       string
	getErr      error
	createErr   error
	getCalls    int
	createCalls int
	showRecent  bool
}

func (r *fakeStoresRepo) GetAdminToken(context.Context) (string, error) {
	r.getCalls++
	if r.getErr != nil {
		return "", r.getErr
	}
	return r.token, nil
}

func (r *fakeStoresRepo) CreateAdminToken(_ context.Context, digest string) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	r.token = digest
	return nil
}

func (r *fakeStoresRepo) GetShouldShowRecent(context.Context) (bool, error) {
	return r.showRecent, nil
}

func (r *fakeStoresRepo) SetShouldShowRecent(_ context.Context, value bool) error {
	r.showRecent = value
	return nil
}

// ---------- pages ----------

type fakePagesRepo struct {
	byID            map[int64]*models.Page
	getErr          error
	softDeleteOK    bool
	softDeleteCalls int
	restoreOK       bool
	hardDeleteCalls int
	updateStmt      dbx.Statement
}

func (r *fakePagesRepo) Count(context.Context, pages.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakePagesRepo) List(context.Context, pages.Filter, int, int) ([]*models.Page, error) {
	var result []*models.Page
	for _, p := range r.byID {
		result = append(result, p)
	}
	return result, nil
}

func (r *fakePagesRepo) GetByID(_ context.Context, id int64) (*models.Page, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (r *fakePagesRepo) GetByURL(context.Context, string) ([]*models.Page, error) { return nil, nil }
func (r *fakePagesRepo) ListRecent(context.Context, int) ([]*models.Page, error) { return nil, nil }
func (r *fakePagesRepo) AllIDsByFolder(context.Context, int64) ([]int64, error) { return nil, nil }

func (r *fakePagesRepo) CountAll(context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakePagesRepo) Insert(_ context.Context, p *models.Page) (int64, error) {
	id := int64(len(r.byID) + 1)
	p.ID = id
	r.byID[id] = p
	return id, nil
}

func (r *fakePagesRepo) UpdateStatement(*models.Page) dbx.Statement { return r.updateStmt }

func (r *fakePagesRepo) SoftDelete(context.Context, int64) (bool, error) {
	r.softDeleteCalls++
	return r.softDeleteOK, nil
}

func (r *fakePagesRepo) Restore(context.Context, int64) (bool, error) {
	return r.restoreOK, nil
}

func (r *fakePagesRepo) HardDelete(_ context.Context, id int64) (bool, error) {
	r.hardDeleteCalls++
	delete(r.byID, id)
	return true, nil
}

// ---------- tags ----------

type fakeTagsRepo struct{}

func (r *fakeTagsRepo) List(context.Context) ([]*models.Tag, error) { return nil, nil }
func (r *fakeTagsRepo) GetByID(context.Context, int64) (*models.Tag, error) { return nil, nil }
func (r *fakeTagsRepo) Insert(context.Context, string, string) (int64, error) { return 0, nil }
func (r *fakeTagsRepo) Update(context.Context, int64, *string, *string) (bool, error) {
	return false, nil
}
func (r *fakeTagsRepo) Delete(context.Context, int64) (bool, error) { return false, nil }

// ---------- folders ----------

type fakeFoldersRepo struct{}

func (r *fakeFoldersRepo) List(context.Context) ([]*models.Folder, error) { return nil, nil }
func (r *fakeFoldersRepo) GetByID(context.Context, int64) (*models.Folder, error) { return nil, nil }
func (r *fakeFoldersRepo) Insert(context.Context, string) (int64, error) { return 0, nil }
func (r *fakeFoldersRepo) Rename(context.Context, int64, string) (bool, error) { return false, nil }

// ---------- shares ----------

type fakeSharesRepo struct {
	links             []*models.ShareLink
	createErr         error
	deleteByPageCalls int
	lastCreatedExpiry *time.Time
}

func (r *fakeSharesRepo) Create(_ context.Context, pageID int64, shareCode string, expiresAt *time.Time) (*models.ShareLink, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	link := &models.ShareLink{
		ID:        int64(len(r.links) + 1),
		PageID:    pageID,
		ShareCode: shareCode,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	r.links = append(r.links, link)
	r.lastCreatedExpiry = expiresAt
	return link, nil
}

func (r *fakeSharesRepo) GetByCode(_ context.Context, shareCode string) (*models.ShareLink, error) {
	for _, l := range r.links {
		if l.ShareCode == shareCode {
			return l, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeSharesRepo) ListByPage(_ context.Context, pageID int64) ([]*models.ShareLink, error) {
	var result []*models.ShareLink
	for _, l := range r.links {
		if l.PageID == pageID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *fakeSharesRepo) ListAll(context.Context) ([]*models.ShareLink, error) {
	return r.links, nil
}

func (r *fakeSharesRepo) Delete(_ context.Context, id int64) (bool, error) {
	for i, l := range r.links {
		if l.ID == id {
			r.links = append(r.links[:i], r.links[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSharesRepo) DeleteByPage(_ context.Context, pageID int64) error {
	r.deleteByPageCalls++
	var kept []*models.ShareLink
	for _, l := range r.links {
		if l.PageID != pageID {
			kept = append(kept, l)
		}
	}
	r.links = kept
	return nil
}

// ---------- blobs ----------

type fakeBlobStore struct {
	objects     map[string][]byte
	putCalls    int
	deleteCalls [][]string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (s *fakeBlobStore) Put(_ context.Context, key string, data []byte) error {
	s.putCalls++
	s.objects[key] = data
	return nil
}

func (s *fakeBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return data, nil
}

// Delete tolerates keys that were never stored, mirroring the S3 store.
func (s *fakeBlobStore) Delete(_ context.Context, keys []string) error {
	s.deleteCalls = append(s.deleteCalls, keys)
	for _, k := range keys {
		delete(s.objects, k)
	}
	return nil
}
