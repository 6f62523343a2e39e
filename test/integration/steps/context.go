// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/budget-planner/backend/config"
	"github.com/budget-planner/backend/internal/infra/dependency"
	"github.com/budget-planner/backend/internal/integration/cache"
	"github.com/budget-planner/backend/internal/integration/persistence"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
	"github.com/budget-planner/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri        string
	headers    map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	serverPort int

	accessToken  string
	refreshToken string

	currentUserID     uuid.UUID
	currentCategoryID uuid.UUID
	secondCategoryID  uuid.UUID
	currentGoalID     uuid.UUID
	lastID            uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("JWT_SECRET", testJWTSecret)
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb(map[string]any{
			"users":        &model.UserModel{},
			"categories":   &model.CategoryModel{},
			"transactions": &model.TransactionModel{},
			"goals":        &model.GoalModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)

	// Ledger setup steps
	ctx.Given(`^a category exists with name "([^"]*)" and budget "([^"]*)"$`, test.aCategoryExistsWithNameAndBudget)
	ctx.Given(`^another category exists with name "([^"]*)" and budget "([^"]*)"$`, test.anotherCategoryExistsWithNameAndBudget)
	ctx.Given(`^a goal exists with name "([^"]*)" and target "([^"]*)"$`, test.aGoalExistsWithNameAndTarget)
	ctx.Given(`^a transaction exists with description "([^"]*)", amount "([^"]*)" and type "([^"]*)"$`, test.aTransactionExistsWith)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentCategoryID = uuid.Nil
	t.secondCategoryID = uuid.Nil
	t.currentGoalID = uuid.Nil
	t.lastID = uuid.Nil
	t.response = nil

	if err := t.db.Reset(); err != nil {
		return err
	}
	return mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			cfg := config.Load()
			redisClient := mock.NewRedis()

			repos := dependency.Repositories{
				Users:        persistence.NewUserRepository(testDB.DbConn),
				Transactions: persistence.NewTransactionRepository(testDB.DbConn),
				Categories:   persistence.NewCategoryRepository(testDB.DbConn),
				Goals:        persistence.NewGoalRepository(testDB.DbConn),
			}

			injector := dependency.NewInjector(cfg, repos, redisClient)
			engine := injector.Router.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	// Wait for the server to come up
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	userID := uuid.New()
	t.currentUserID = userID

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           userID,
		Email:        email,
		Name:         "Test User",
		PasswordHash: hashPassword(password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	now := time.Now().UTC()

	accessTokenString, err := t.signToken("access", now, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = accessTokenString

	refreshTokenString, err := t.signToken("refresh", now, 7*24*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate refresh token: %w", err)
	}
	t.refreshToken = refreshTokenString

	// The refresh token must be registered in the session store to be usable.
	store := cache.NewRedisRefreshTokenStore(mock.NewRedis())
	return store.Save(context.Background(), t.refreshToken, t.currentUserID, now.Add(7*24*time.Hour))
}

func (t *testContext) signToken(tokenType string, now time.Time, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      "test@example.com",
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(now.Add(duration)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "budget-planner",
		"sub":        t.currentUserID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

func (t *testContext) aCategoryExistsWithNameAndBudget(name, budget string) error {
	id, err := t.createCategory(name, budget)
	if err != nil {
		return err
	}
	t.currentCategoryID = id
	return nil
}

func (t *testContext) anotherCategoryExistsWithNameAndBudget(name, budget string) error {
	id, err := t.createCategory(name, budget)
	if err != nil {
		return err
	}
	t.secondCategoryID = id
	return nil
}

func (t *testContext) createCategory(name, budget string) (uuid.UUID, error) {
	amount, err := decimal.NewFromString(budget)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid budget %q: %w", budget, err)
	}

	id := uuid.New()
	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		ID:        id,
		UserID:    t.currentUserID,
		Name:      name,
		Budget:    amount,
		Icon:      "tag",
		Color:     "#6366F1",
		CreatedAt: now,
		UpdatedAt: now,
	}

	return id, t.db.DbConn.Create(categoryModel).Error
}

func (t *testContext) aGoalExistsWithNameAndTarget(name, target string) error {
	amount, err := decimal.NewFromString(target)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}

	goalID := uuid.New()
	t.currentGoalID = goalID

	now := time.Now().UTC()
	goalModel := &model.GoalModel{
		ID:                  goalID,
		UserID:              t.currentUserID,
		Name:                name,
		TargetAmount:        amount,
		MonthlyContribution: decimal.NewFromInt(100),
		TargetDate:          now.AddDate(0, 10, 0),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	return t.db.DbConn.Create(goalModel).Error
}

func (t *testContext) aTransactionExistsWith(description, amount, transactionType string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	categoryID := t.currentCategoryID
	if transactionType == "income" && t.secondCategoryID != uuid.Nil {
		categoryID = t.secondCategoryID
	}

	id := uuid.New()
	t.lastID = id

	now := time.Now().UTC()
	transactionModel := &model.TransactionModel{
		ID:          id,
		UserID:      t.currentUserID,
		Date:        time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      value,
		Type:        transactionType,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return t.db.DbConn.Create(transactionModel).Error
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	now := time.Now().UTC()
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{second_category_id}}", t.secondCategoryID.String())
	content = strings.ReplaceAll(content, "{{goal_id}}", t.currentGoalID.String())
	content = strings.ReplaceAll(content, "{{id}}", t.lastID.String())
	content = strings.ReplaceAll(content, "{{this_month}}", time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path
	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture tokens and created IDs so later steps can reference them.
	if token, ok := responseBody["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := responseBody["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}
	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastID = id
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if value := getFieldValue(t.response.body, field); value != nil {
		return fmt.Errorf("field '%s' should not exist but is '%v'", field, value)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	result := t.db.DbConn.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

// getFieldValue resolves a dot-separated path into a decoded JSON value.
// Numeric path segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	objectMap, ok := object.(map[string]any)
	if !ok {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
		} else {
			m, ok := field.(map[string]any)
			if !ok {
				return nil
			}
			field = m[currentField]
		}
	}

	return field
}
