package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/prn-tf/coursebook/internal/auth"
	"github.com/prn-tf/coursebook/internal/domain"
	"github.com/prn-tf/coursebook/internal/metrics"
	"github.com/prn-tf/coursebook/internal/service"
)

// mockUserRepo is an in-memory repository.UserRepository for HTTP tests.
type mockUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.EmailAddress]; exists {
		return domain.NewValidationError(domain.MsgEmailTaken)
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.EmailAddress] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, emailAddress string) (*domain.User, error) {
	if u, exists := m.users[emailAddress]; exists {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, emailAddress string) (bool, error) {
	_, exists := m.users[emailAddress]
	return exists, nil
}

// mockCourseRepo is an in-memory repository.CourseRepository that checks
// the owner foreign key against a user repo, like the real drivers do.
type mockCourseRepo struct {
	userRepo *mockUserRepo
	courses  map[int64]*domain.Course
	nextID   int64
}

func newMockCourseRepo(userRepo *mockUserRepo) *mockCourseRepo {
	return &mockCourseRepo{
		userRepo: userRepo,
		courses:  make(map[int64]*domain.Course),
		nextID:   1,
	}
}

func (m *mockCourseRepo) Create(ctx context.Context, course *domain.Course) error {
	if _, err := m.userRepo.GetByID(ctx, course.UserID); err != nil {
		return domain.NewValidationError(domain.MsgUserMissing)
	}
	course.ID = m.nextID
	m.nextID++
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	if c, exists := m.courses[id]; exists {
		return c, nil
	}
	return nil, domain.ErrCourseNotFound
}

func (m *mockCourseRepo) List(ctx context.Context) ([]*domain.Course, error) {
	result := make([]*domain.Course, 0, len(m.courses))
	for _, c := range m.courses {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	if _, exists := m.courses[course.ID]; !exists {
		return domain.ErrCourseNotFound
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id int64) error {
	if _, exists := m.courses[id]; !exists {
		return domain.ErrCourseNotFound
	}
	delete(m.courses, id)
	return nil
}

// testServer bundles the assembled HTTP handler with its backing repos.
type testServer struct {
	handler    http.Handler
	userRepo   *mockUserRepo
	courseRepo *mockCourseRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zerolog.Nop()
	userRepo := newMockUserRepo()
	courseRepo := newMockCourseRepo(userRepo)

	userService := service.NewUserService(userRepo, logger)
	courseService := service.NewCourseService(courseRepo, logger)
	gate := auth.NewGate(userService, logger)

	router := NewRouter(RouterConfig{
		UserHandler:   NewUserHandler(userService, gate, logger),
		CourseHandler: NewCourseHandler(courseService, gate, logger),
		Metrics:       metrics.New(),
		MetricsPath:   "/metrics",
		Logger:        logger,
	})

	return &testServer{
		handler:    router.Handler(),
		userRepo:   userRepo,
		courseRepo: courseRepo,
	}
}

// seedUser registers a user directly and returns it.
func (ts *testServer) seedUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.NewUser("Joe", "Smith", email, string(hash))
	require.NoError(t, ts.userRepo.Create(context.Background(), user))
	return user
}

// seedCourse stores a course directly and returns it.
func (ts *testServer) seedCourse(t *testing.T, title string, ownerID int64) *domain.Course {
	t.Helper()
	course := domain.NewCourse(title, "Learn by doing.", nil, nil, ownerID)
	require.NoError(t, ts.courseRepo.Create(context.Background(), course))
	return course
}

// do performs a request against the assembled handler.
func (ts *testServer) do(method, path, body, authHeader string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		r.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, r)
	return w
}

func basicAuth(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}
