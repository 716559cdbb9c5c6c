package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListCourses(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "joe@smith.com", "joepassword")
	ts.seedCourse(t, "Build a Basic Bookcase", user.ID)
	ts.seedCourse(t, "Learn How to Program", user.ID)

	w := ts.do(http.MethodGet, "/api/courses", "", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Courses []struct {
			Title  string `json:"title"`
			UserID int64  `json:"userId"`
		} `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Courses, 2)
}

func TestListCourses_Empty(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/courses", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"courses":[]}`, w.Body.String())
}

func TestGetCourse(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "joe@smith.com", "joepassword")
	course := ts.seedCourse(t, "Build a Basic Bookcase", user.ID)

	w := ts.do(http.MethodGet, fmt.Sprintf("/api/courses/%d", course.ID), "", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Course struct {
			ID     int64  `json:"id"`
			Title  string `json:"title"`
			UserID int64  `json:"userId"`
		} `json:"course"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, course.ID, resp.Course.ID)
	require.Equal(t, "Build a Basic Bookcase", resp.Course.Title)
	require.Equal(t, user.ID, resp.Course.UserID)
}

func TestGetCourse_NotFound(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/courses/999", "/api/courses/abc"} {
		w := ts.do(http.MethodGet, path, "", "")

		require.Equal(t, http.StatusNotFound, w.Code, "path %s", path)
		require.JSONEq(t, `{"message":"Course Not Found"}`, w.Body.String())
	}
}

func TestCreateCourse(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "joe@smith.com", "joepassword")

	body := fmt.Sprintf(`{"title":"Build a Basic Bookcase","description":"High-end furniture.","userId":%d}`, user.ID)
	w := ts.do(http.MethodPost, "/api/courses", body, basicAuth("joe@smith.com", "joepassword"))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Regexp(t, `^/courses/\d+$`, w.Header().Get("Location"))
	require.Empty(t, w.Body.String())
}

func TestCreateCourse_Unauthorized(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/courses",
		`{"title":"Build a Basic Bookcase","description":"High-end furniture.","userId":1}`, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Access Denied"}`, w.Body.String())
}

func TestCreateCourse_ValidationErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "joe@smith.com", "joepassword")

	w := ts.do(http.MethodPost, "/api/courses", `{"description":""}`,
		basicAuth("joe@smith.com", "joepassword"))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, []string{
		"A title is required",
		"Please provide a description",
		"A userId is required",
	}, resp.Errors)
}

func TestCreateCourse_UnknownOwner(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "joe@smith.com", "joepassword")

	w := ts.do(http.MethodPost, "/api/courses",
		`{"title":"Build a Basic Bookcase","description":"High-end furniture.","userId":42}`,
		basicAuth("joe@smith.com", "joepassword"))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, []string{"userId must reference an existing user"}, resp.Errors)
}

func TestUpdateCourse(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "joe@smith.com", "joepassword")
	course := ts.seedCourse(t, "Build a Basic Bookcase", user.ID)

	w := ts.do(http.MethodPut, fmt.Sprintf("/api/courses/%d", course.ID),
		`{"title":"Build an Advanced Bookcase","description":"Even higher-end furniture.","estimatedTime":"12 hours"}`,
		basicAuth("joe@smith.com", "joepassword"))

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.String())

	// The update is visible on a subsequent read.
	w = ts.do(http.MethodGet, fmt.Sprintf("/api/courses/%d", course.ID), "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Course struct {
			Title         string  `json:"title"`
			EstimatedTime *string `json:"estimatedTime"`
		} `json:"course"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Build an Advanced Bookcase", resp.Course.Title)
	require.NotNil(t, resp.Course.EstimatedTime)
	require.Equal(t, "12 hours", *resp.Course.EstimatedTime)
}

func TestUpdateCourse_AnyAuthenticatedUserMayEdit(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.seedUser(t, "joe@smith.com", "joepassword")
	ts.seedUser(t, "sally@jones.com", "sallypassword")
	course := ts.seedCourse(t, "Build a Basic Bookcase", owner.ID)

	w := ts.do(http.MethodPut, fmt.Sprintf("/api/courses/%d", course.ID),
		`{"title":"Hijacked Title","description":"Edited by a non-owner."}`,
		basicAuth("sally@jones.com", "sallypassword"))

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateCourse_NotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "joe@smith.com", "joepassword")

	w := ts.do(http.MethodPut, "/api/courses/999",
		`{"title":"Ghost Course","description":"Does not exist."}`,
		basicAuth("joe@smith.com", "joepassword"))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"message":"Course Not Found"}`, w.Body.String())
}

func TestDeleteCourse(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "joe@smith.com", "joepassword")
	course := ts.seedCourse(t, "Build a Basic Bookcase", user.ID)

	w := ts.do(http.MethodDelete, fmt.Sprintf("/api/courses/%d", course.ID), "",
		basicAuth("joe@smith.com", "joepassword"))

	require.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodGet, fmt.Sprintf("/api/courses/%d", course.ID), "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCourse_NotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "joe@smith.com", "joepassword")

	w := ts.do(http.MethodDelete, "/api/courses/999", "",
		basicAuth("joe@smith.com", "joepassword"))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"message":"Course Not Found"}`, w.Body.String())
}

func TestDeleteCourse_Unauthorized(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "joe@smith.com", "joepassword")
	course := ts.seedCourse(t, "Build a Basic Bookcase", user.ID)

	w := ts.do(http.MethodDelete, fmt.Sprintf("/api/courses/%d", course.ID), "", "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
