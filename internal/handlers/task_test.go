package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/keynertyc/Fullstack-Test-01/internal/constants"
	"github.com/keynertyc/Fullstack-Test-01/internal/middleware"
	"github.com/keynertyc/Fullstack-Test-01/internal/models"
	"github.com/keynertyc/Fullstack-Test-01/internal/repository"
	"github.com/keynertyc/Fullstack-Test-01/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db             *gorm.DB
	handler        *TaskHandler
	projectService *services.ProjectService
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectCollaborator{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	projectRepo := repository.NewProjectRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	access := services.NewAccessService(projectRepo)
	suite.projectService = services.NewProjectService(projectRepo, userRepo, access)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, access))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Name:         "Test User",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestProject(name string, ownerID uint64) *models.Project {
	project := &models.Project{
		Name:    name,
		OwnerID: ownerID,
	}
	suite.db.Create(project)
	return project
}

func (suite *TaskHandlerTestSuite) createTestCollaborator(projectID, userID uint64) {
	suite.db.Create(&models.ProjectCollaborator{
		ProjectID: projectID,
		UserID:    userID,
		AddedAt:   time.Now(),
	})
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, projectID, creatorID uint64) *models.Task {
	task := &models.Task{
		Title:     title,
		Status:    models.TaskStatusPending,
		Priority:  models.TaskPriorityMedium,
		ProjectID: projectID,
		CreatedBy: creatorID,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUser, middleware.CurrentUser{ID: userID})

	return c, w
}

func (suite *TaskHandlerTestSuite) setIDParam(c *gin.Context, name string, id uint64) {
	c.Params = append(c.Params, gin.Param{Key: name, Value: fmt.Sprintf("%d", id)})
}

// TestCreateTask_AsCollaborator tests that any project member may create tasks
func (suite *TaskHandlerTestSuite) TestCreateTask_AsCollaborator() {
	owner := suite.createTestUser("owner@example.com")
	collab := suite.createTestUser("collab@example.com")
	project := suite.createTestProject("Shared", owner.ID)
	suite.createTestCollaborator(project.ID, collab.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title":      "New Task",
		"project_id": project.ID,
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, collab.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "New Task", data["title"])
	assert.Equal(suite.T(), "pending", data["status"])
	assert.Equal(suite.T(), "medium", data["priority"])
	assert.Equal(suite.T(), float64(collab.ID), data["created_by"])
}

// TestCreateTask_ProjectNotFound tests creation against an absent project
func (suite *TaskHandlerTestSuite) TestCreateTask_ProjectNotFound() {
	user := suite.createTestUser("user@example.com")

	body, _ := json.Marshal(map[string]interface{}{
		"title":      "New Task",
		"project_id": 999,
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateTask_NoAccess tests creation by someone outside the project
func (suite *TaskHandlerTestSuite) TestCreateTask_NoAccess() {
	owner := suite.createTestUser("owner@example.com")
	outsider := suite.createTestUser("outsider@example.com")
	project := suite.createTestProject("Private", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title":      "New Task",
		"project_id": project.ID,
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, outsider.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestCreateTask_AssigneeNotMember tests assigning to a non-member
func (suite *TaskHandlerTestSuite) TestCreateTask_AssigneeNotMember() {
	owner := suite.createTestUser("owner@example.com")
	stranger := suite.createTestUser("stranger@example.com")
	project := suite.createTestProject("Private", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "New Task",
		"project_id":  project.ID,
		"assigned_to": stranger.ID,
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, owner.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestTaskAccessFollowsMembership tests that revoking a membership removes
// task access, end to end: owner shares a project, collaborator creates a
// task, owner removes the collaborator, collaborator loses the task.
func (suite *TaskHandlerTestSuite) TestTaskAccessFollowsMembership() {
	owner := suite.createTestUser("owner@example.com")
	collab := suite.createTestUser("collab@example.com")
	project := suite.createTestProject("Shared", owner.ID)

	err := suite.projectService.AddCollaborator(project.ID, owner.ID, collab.ID)
	suite.Require().NoError(err)

	body, _ := json.Marshal(map[string]interface{}{
		"title":      "Collab Task",
		"project_id": project.ID,
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, collab.ID)
	suite.handler.CreateTask(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	taskID := uint64(created["data"].(map[string]interface{})["id"].(float64))

	c, w = suite.createAuthContext("GET", "/api/tasks/1", nil, collab.ID)
	suite.setIDParam(c, "id", taskID)
	suite.handler.GetTask(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	err = suite.projectService.RemoveCollaborator(project.ID, owner.ID, collab.ID)
	suite.Require().NoError(err)

	c, w = suite.createAuthContext("GET", "/api/tasks/1", nil, collab.ID)
	suite.setIDParam(c, "id", taskID)
	suite.handler.GetTask(c)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	c, w = suite.createAuthContext("GET", "/api/tasks/1", nil, owner.ID)
	suite.setIDParam(c, "id", taskID)
	suite.handler.GetTask(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestGetTask_NotFound tests reading an absent task
func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	user := suite.createTestUser("user@example.com")

	c, w := suite.createAuthContext("GET", "/api/tasks/999", nil, user.ID)
	suite.setIDParam(c, "id", 999)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateTask_ClearAssignee tests that an explicit null clears assignment
func (suite *TaskHandlerTestSuite) TestUpdateTask_ClearAssignee() {
	owner := suite.createTestUser("owner@example.com")
	collab := suite.createTestUser("collab@example.com")
	project := suite.createTestProject("Shared", owner.ID)
	suite.createTestCollaborator(project.ID, collab.ID)

	task := suite.createTestTask("Assigned Task", project.ID, owner.ID)
	suite.db.Model(task).Update("assigned_to", collab.ID)

	c, w := suite.createAuthContext("PUT", "/api/tasks/1", []byte(`{"assigned_to": null}`), owner.ID)
	suite.setIDParam(c, "id", task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Task
	suite.db.First(&updated, task.ID)
	assert.Nil(suite.T(), updated.AssignedTo)
}

// TestUpdateTask_OmittedAssigneeKept tests that omitting the field keeps assignment
func (suite *TaskHandlerTestSuite) TestUpdateTask_OmittedAssigneeKept() {
	owner := suite.createTestUser("owner@example.com")
	collab := suite.createTestUser("collab@example.com")
	project := suite.createTestProject("Shared", owner.ID)
	suite.createTestCollaborator(project.ID, collab.ID)

	task := suite.createTestTask("Assigned Task", project.ID, owner.ID)
	suite.db.Model(task).Update("assigned_to", collab.ID)

	c, w := suite.createAuthContext("PUT", "/api/tasks/1", []byte(`{"status": "completed"}`), owner.ID)
	suite.setIDParam(c, "id", task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Task
	suite.db.First(&updated, task.ID)
	assert.Equal(suite.T(), models.TaskStatusCompleted, updated.Status)
	suite.Require().NotNil(updated.AssignedTo)
	assert.Equal(suite.T(), collab.ID, *updated.AssignedTo)
}

// TestUpdateTask_AssigneeNotMember tests reassignment to a non-member
func (suite *TaskHandlerTestSuite) TestUpdateTask_AssigneeNotMember() {
	owner := suite.createTestUser("owner@example.com")
	stranger := suite.createTestUser("stranger@example.com")
	project := suite.createTestProject("Private", owner.ID)
	task := suite.createTestTask("Task", project.ID, owner.ID)

	body, _ := json.Marshal(map[string]interface{}{"assigned_to": stranger.ID})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body, owner.ID)
	suite.setIDParam(c, "id", task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateTask_NoAccess tests updates by someone outside the project
func (suite *TaskHandlerTestSuite) TestUpdateTask_NoAccess() {
	owner := suite.createTestUser("owner@example.com")
	outsider := suite.createTestUser("outsider@example.com")
	project := suite.createTestProject("Private", owner.ID)
	task := suite.createTestTask("Task", project.ID, owner.ID)

	body, _ := json.Marshal(map[string]string{"title": "Hijacked"})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body, outsider.ID)
	suite.setIDParam(c, "id", task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestDeleteTask_AsCollaborator tests that any project member may delete a task
func (suite *TaskHandlerTestSuite) TestDeleteTask_AsCollaborator() {
	owner := suite.createTestUser("owner@example.com")
	collab := suite.createTestUser("collab@example.com")
	project := suite.createTestProject("Shared", owner.ID)
	suite.createTestCollaborator(project.ID, collab.ID)
	task := suite.createTestTask("Doomed Task", project.ID, owner.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, collab.ID)
	suite.setIDParam(c, "id", task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestListTasksByProject_NoAccess tests per-project listing for an outsider
func (suite *TaskHandlerTestSuite) TestListTasksByProject_NoAccess() {
	owner := suite.createTestUser("owner@example.com")
	outsider := suite.createTestUser("outsider@example.com")
	project := suite.createTestProject("Private", owner.ID)
	suite.createTestTask("Task", project.ID, owner.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks/project/1", nil, outsider.ID)
	suite.setIDParam(c, "projectId", project.ID)

	suite.handler.ListTasksByProject(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestListTasksByProject_Success tests per-project listing for a member
func (suite *TaskHandlerTestSuite) TestListTasksByProject_Success() {
	owner := suite.createTestUser("owner@example.com")
	project := suite.createTestProject("Mine", owner.ID)
	suite.createTestTask("First", project.ID, owner.ID)
	suite.createTestTask("Second", project.ID, owner.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks/project/1", nil, owner.ID)
	suite.setIDParam(c, "projectId", project.ID)

	suite.handler.ListTasksByProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response["data"].([]interface{}), 2)
}

// TestListTasks_Visibility tests the cross-project listing only shows
// tasks from projects the caller belongs to
func (suite *TaskHandlerTestSuite) TestListTasks_Visibility() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")

	mine := suite.createTestProject("Mine", owner.ID)
	shared := suite.createTestProject("Shared", other.ID)
	suite.createTestCollaborator(shared.ID, owner.ID)
	foreign := suite.createTestProject("Foreign", other.ID)

	suite.createTestTask("Own Task", mine.ID, owner.ID)
	suite.createTestTask("Shared Task", shared.ID, other.ID)
	suite.createTestTask("Hidden Task", foreign.ID, other.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, owner.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	data := response["data"].([]interface{})
	assert.Len(suite.T(), data, 2)
	for _, entry := range data {
		title := entry.(map[string]interface{})["title"].(string)
		assert.NotEqual(suite.T(), "Hidden Task", title)
	}

	pagination := response["pagination"].(map[string]interface{})
	assert.Equal(suite.T(), float64(2), pagination["total"])
}

// TestListTasks_StatusFilter tests conjunctive filtering
func (suite *TaskHandlerTestSuite) TestListTasks_StatusFilter() {
	owner := suite.createTestUser("owner@example.com")
	project := suite.createTestProject("Mine", owner.ID)

	suite.createTestTask("Pending Task", project.ID, owner.ID)
	done := suite.createTestTask("Done Task", project.ID, owner.ID)
	suite.db.Model(done).Update("status", models.TaskStatusCompleted)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, owner.ID)
	c.Request.URL.RawQuery = "status=completed"

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	data := response["data"].([]interface{})
	suite.Require().Len(data, 1)
	assert.Equal(suite.T(), "Done Task", data[0].(map[string]interface{})["title"])
}

// TestListTasks_InvalidStatus tests filter validation
func (suite *TaskHandlerTestSuite) TestListTasks_InvalidStatus() {
	owner := suite.createTestUser("owner@example.com")

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, owner.ID)
	c.Request.URL.RawQuery = "status=bogus"

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListTasks_Pagination tests that pages are disjoint and totals stable
func (suite *TaskHandlerTestSuite) TestListTasks_Pagination() {
	owner := suite.createTestUser("owner@example.com")
	project := suite.createTestProject("Mine", owner.ID)
	for i := 0; i < 5; i++ {
		suite.createTestTask(fmt.Sprintf("Task %d", i), project.ID, owner.ID)
	}

	seen := map[float64]bool{}
	for page := 1; page <= 3; page++ {
		c, w := suite.createAuthContext("GET", "/api/tasks", nil, owner.ID)
		c.Request.URL.RawQuery = fmt.Sprintf("page=%d&limit=2&sort_by=created_at&order=asc", page)

		suite.handler.ListTasks(c)
		suite.Require().Equal(http.StatusOK, w.Code)

		var response map[string]interface{}
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))

		pagination := response["pagination"].(map[string]interface{})
		assert.Equal(suite.T(), float64(5), pagination["total"])
		assert.Equal(suite.T(), float64(3), pagination["total_pages"])

		for _, entry := range response["data"].([]interface{}) {
			id := entry.(map[string]interface{})["id"].(float64)
			assert.False(suite.T(), seen[id], "task repeated across pages")
			seen[id] = true
		}
	}
	assert.Len(suite.T(), seen, 5)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
