package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/miy4x/shigezane-admin/internal/client/client"
	"github.com/miy4x/shigezane-admin/internal/client/config"
	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/query"
	"github.com/miy4x/shigezane-admin/internal/client/services"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
	"github.com/miy4x/shigezane-admin/internal/logging"
)

func init() {
	color.NoColor = true
}

// fakeBackend is an in-memory client.Transport keyed by "METHOD /path".
type fakeBackend struct {
	mu        sync.Mutex
	responses map[string]any
	errs      map[string]error
	requests  []client.Request
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{responses: map[string]any{}, errs: map[string]error{}}
}

func (b *fakeBackend) on(method, path string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[method+" "+path] = data
}

func (b *fakeBackend) fail(method, path string, status int, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errs[method+" "+path] = &client.RequestError{
		Kind: client.ErrorResponse, Method: method, Path: path, StatusCode: status, Message: msg,
	}
}

func (b *fakeBackend) Do(ctx context.Context, r client.Request, out any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r)
	key := r.Method + " " + r.Path
	if err, ok := b.errs[key]; ok {
		return err
	}
	data, ok := b.responses[key]
	if !ok {
		return &client.RequestError{Kind: client.ErrorResponse, Method: r.Method, Path: r.Path, StatusCode: http.StatusNotFound, Message: "not found"}
	}
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// sent returns the requests matching method and path.
func (b *fakeBackend) sent(method, path string) []client.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []client.Request
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

type fakeAuth struct {
	loggedIn bool
	logouts  int
	session  models.Session
	loginErr error
	password string
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (models.Session, error) {
	f.password = password
	if f.loginErr != nil {
		return models.Session{}, f.loginErr
	}
	f.loggedIn = true
	f.session = models.Session{Token: "tok", User: models.User{ID: "u1", Name: "重実", Email: email}}
	return f.session, nil
}

func (f *fakeAuth) Restore(ctx context.Context) (models.Session, error) {
	if !f.loggedIn {
		return models.Session{}, services.ErrNotLoggedIn
	}
	return f.session, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	f.loggedIn = false
	return nil
}

func (f *fakeAuth) Current() (models.Session, error) {
	if !f.loggedIn {
		return models.Session{}, services.ErrNotLoggedIn
	}
	return f.session, nil
}

type fakeUploader struct {
	mu      sync.Mutex
	calls   []string
	deleted []string
}

func (u *fakeUploader) UploadForRole(ctx context.Context, f upload.File, role models.ImageRole) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls = append(u.calls, "upload:"+string(role))
	return "https://cdn.example.com/" + string(role) + "/" + f.Name, nil
}

func (u *fakeUploader) UploadGallery(ctx context.Context, fields []models.ImageField, files []upload.File) upload.GalleryResult {
	u.mu.Lock()
	defer u.mu.Unlock()
	res := upload.GalleryResult{URLs: make([]string, len(files)), Errors: make([]error, len(files))}
	for i, f := range files {
		u.calls = append(u.calls, "upload:gallery")
		res.URLs[i] = "https://cdn.example.com/gallery/" + f.Name
		res.Succeeded++
	}
	return res
}

func (u *fakeUploader) DeleteImage(ctx context.Context, imageURL string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, imageURL)
	return nil
}

type testApp struct {
	*App
	backend  *fakeBackend
	auth     *fakeAuth
	uploader *fakeUploader
	out      *bytes.Buffer
}

// newTestApp wires an App over fakes; input feeds every prompt.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	backend := newFakeBackend()
	auth := &fakeAuth{loggedIn: true, session: models.Session{Token: "tok", User: models.User{Name: "重実", Email: "admin@example.com"}}}
	up := &fakeUploader{}
	out := &bytes.Buffer{}
	logger := logging.Discard()

	api := client.NewAPI(backend)
	cache := query.New(query.Options{RetryDelay: time.Millisecond}, logger)
	registry := services.NewRegistry(api, cache, up, logger)

	a := &App{
		config:    &config.Config{ExportDir: t.TempDir()},
		logger:    logger,
		cache:     cache,
		uploader:  up,
		auth:      auth,
		registry:  registry,
		dashboard: services.NewDashboardService(registry),
		exporter:  services.NewExportService(registry, logger),
		reader:    bufio.NewReader(strings.NewReader(input)),
		out:       out,
	}
	return &testApp{App: a, backend: backend, auth: auth, uploader: up, out: out}
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func writeJPEG(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	data := append([]byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 64)...)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

var (
	testBuilding = models.Building{BuildingID: 1, Name: "重実ハイツ", Address: "福岡市中央区1-1", Structure: models.StructureRC, TotalFloors: 5}

	testRental = models.RentalUnit{
		UnitID: 1, BuildingID: 1, BuildingName: "重実ハイツ", UnitNumber: "101", Floor: 1,
		RoomLayout: "1LDK", Area: 40, MonthlyRent: 70000, ManagementFee: 3000,
		Status: models.StatusRecruiting,
		Images: models.ImageSet{
			Main:      "https://cdn.example.com/main/old.jpg",
			Floorplan: "https://cdn.example.com/floorplan/old.jpg",
		},
	}

	testRental2 = models.RentalUnit{
		UnitID: 2, BuildingID: 1, BuildingName: "重実ハイツ", UnitNumber: "201", Floor: 2,
		RoomLayout: "2LDK", Area: 55, MonthlyRent: 90000, Status: models.StatusOccupied,
		Images: models.ImageSet{Main: "https://cdn.example.com/main/b.jpg", Floorplan: "https://cdn.example.com/floorplan/b.jpg"},
	}
)

var clientErr401 = client.RequestError{
	Kind: client.ErrorResponse, Method: http.MethodPost, Path: "/auth/login",
	StatusCode: http.StatusUnauthorized, Message: "invalid credentials",
}
