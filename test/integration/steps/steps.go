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
	messages "github.com/cucumber/messages/go/v21"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ventureboard/backend/config"
	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/infra/dependency"
	"github.com/ventureboard/backend/internal/integration/adapters"
	"github.com/ventureboard/backend/internal/integration/persistence"
	"github.com/ventureboard/backend/internal/integration/persistence/model"
	"github.com/ventureboard/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Db
	redis       *redis.Client
	serverPort  int
	accessToken string

	currentUserID     uuid.UUID
	companies         map[string]uuid.UUID
	currentPeriodID   uuid.UUID
	currentCategoryID uuid.UUID
	lineIDs           []uuid.UUID
	lastID            uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testRedis *redis.Client
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("JWT_SECRET", testJWTSecret)
		_ = os.Setenv("FEATURE_IMBALANCE_NOTIFICATIONS", "false")
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
		redis:      mock.NewRedis(),
		db: mock.NewDb("ventureboard", map[string]any{
			"users":               &model.UserModel{},
			"companies":           &model.CompanyModel{},
			"transactions":        &model.TransactionModel{},
			"budget_periods":      &model.BudgetPeriodModel{},
			"budget_categories":   &model.BudgetCategoryModel{},
			"budget_lines":        &model.BudgetLineModel{},
			"statement_snapshots": &model.StatementSnapshotModel{},
			"consolidation_runs":  &model.ConsolidationRunModel{},
		}),
	}

	testDB = test.db
	testRedis = test.redis

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Setup steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^the company "([^"]*)" exists with opening cash "([^"]*)"$`, test.theCompanyExistsWithOpeningCash)
	ctx.Given(`^the company "([^"]*)" belongs to another owner$`, test.theCompanyBelongsToAnotherOwner)
	ctx.Given(`^the company "([^"]*)" has the transactions:$`, test.theCompanyHasTheTransactions)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Cache assertion steps
	ctx.Then(`^the consolidation should be cached$`, test.theConsolidationShouldBeCached)
	ctx.Then(`^the consolidation should not be cached$`, test.theConsolidationShouldNotBeCached)
	ctx.Step(`^the cached consolidation expires$`, test.theCachedConsolidationExpires)
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
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.companies = make(map[string]uuid.UUID)
	t.currentPeriodID = uuid.Nil
	t.currentCategoryID = uuid.Nil
	t.lineIDs = nil
	t.lastID = uuid.Nil

	if err := mock.ClearRedis(context.Background(), t.redis); err != nil {
		return err
	}
	if t.db != nil {
		return t.db.ClearDB()
	}
	return nil
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			cfg := config.Load()
			injector := dependency.NewInjector(cfg, testDB.DbConn, dependency.Options{
				Redis:      testRedis,
				Registerer: prometheus.NewRegistry(),
			})
			engine := injector.Router.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) createUser(email string) (*entity.User, error) {
	now := time.Now().UTC()
	user := &entity.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      strings.Split(email, "@")[0],
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := persistence.NewUserRepository(t.db.DbConn).Create(context.Background(), user); err != nil {
		return nil, err
	}
	return user, nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	user, err := t.createUser(email)
	if err != nil {
		return err
	}

	tokenService := adapters.NewTokenService(testJWTSecret, time.Hour)
	token, err := tokenService.GenerateAccessToken(context.Background(), user.ID, user.Email)
	if err != nil {
		return err
	}

	t.currentUserID = user.ID
	t.accessToken = token
	return nil
}

func (t *testContext) createCompany(ownerID uuid.UUID, name, openingCash string) error {
	cash, err := decimal.NewFromString(openingCash)
	if err != nil {
		return fmt.Errorf("invalid opening cash %q: %w", openingCash, err)
	}

	company := entity.NewCompany(ownerID, name, cash)
	if err := persistence.NewCompanyRepository(t.db.DbConn).Create(context.Background(), company); err != nil {
		return err
	}
	t.companies[name] = company.ID
	return nil
}

func (t *testContext) theCompanyExistsWithOpeningCash(name, openingCash string) error {
	if t.currentUserID == uuid.Nil {
		return errors.New("log in before creating companies")
	}
	return t.createCompany(t.currentUserID, name, openingCash)
}

func (t *testContext) theCompanyBelongsToAnotherOwner(name string) error {
	other, err := t.createUser(uuid.NewString() + "@example.com")
	if err != nil {
		return err
	}
	return t.createCompany(other.ID, name, "0")
}

// theCompanyHasTheTransactions inserts ledger rows from a table with the
// columns date, type, category, amount and description.
func (t *testContext) theCompanyHasTheTransactions(name string, table *godog.Table) error {
	companyID, ok := t.companies[name]
	if !ok {
		return fmt.Errorf("unknown company %q", name)
	}
	if len(table.Rows) < 2 {
		return errors.New("transaction table needs a header and at least one row")
	}

	columns := map[string]int{}
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}
	value := func(row *messages.PickleTableRow, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(row.Cells) {
			return ""
		}
		return row.Cells[i].Value
	}

	repo := persistence.NewTransactionRepository(t.db.DbConn)
	for _, row := range table.Rows[1:] {
		date, err := time.Parse(time.DateOnly, value(row, "date"))
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(value(row, "amount"))
		if err != nil {
			return err
		}
		transactionType := entity.TransactionType(value(row, "type"))

		transaction := entity.NewTransaction(
			companyID,
			date,
			transactionType,
			value(row, "category"),
			amount,
			value(row, "description"),
			entity.DefaultFlags(transactionType),
		)
		if err := repo.Create(context.Background(), transaction); err != nil {
			return err
		}
	}
	return nil
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
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

// replacePlaceholders expands {{company:Name}}, {{period_id}}, {{category_id}},
// {{line_ids}} and {{last_id}}.
func (t *testContext) replacePlaceholders(content string) string {
	for name, id := range t.companies {
		content = strings.ReplaceAll(content, "{{company:"+name+"}}", id.String())
	}
	content = strings.ReplaceAll(content, "{{period_id}}", t.currentPeriodID.String())
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID.String())

	ids := make([]string, len(t.lineIDs))
	for i, id := range t.lineIDs {
		ids[i] = fmt.Sprintf(`"%s"`, id.String())
	}
	content = strings.ReplaceAll(content, "{{line_ids}}", "["+strings.Join(ids, ", ")+"]")

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

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIDs(responseBody)

	return nil
}

// captureIDs remembers created resources so later steps can reference them.
func (t *testContext) captureIDs(body map[string]any) {
	idStr, ok := body["id"].(string)
	if !ok {
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return
	}
	t.lastID = id

	switch {
	case body["start_date"] != nil && body["end_date"] != nil:
		t.currentPeriodID = id
	case body["statement_category"] != nil:
		t.currentCategoryID = id
	case body["period_id"] != nil && body["balance"] != nil:
		t.lineIDs = append(t.lineIDs, id)
	case body["opening_cash"] != nil:
		if name, ok := body["name"].(string); ok {
			t.companies[name] = id
		}
	}
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

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)

	// Amounts compare numerically so "1500" matches "1500.00"
	if expected, err := decimal.NewFromString(expectedValue); err == nil {
		if actual, err := decimal.NewFromString(actualValue); err == nil {
			if !expected.Equal(actual) {
				return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
			}
			return nil
		}
	}

	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != quantity {
		return fmt.Errorf("expected %d items in '%s', got %d", quantity, field, len(items))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) consolidationCacheKeys() (int64, error) {
	return t.redis.Exists(context.Background(), "ventureboard:consolidation:"+t.currentUserID.String()).Result()
}

func (t *testContext) theConsolidationShouldBeCached() error {
	n, err := t.consolidationCacheKeys()
	if err != nil {
		return err
	}
	if n != 1 {
		return errors.New("expected a cached consolidation for the current user")
	}
	return nil
}

func (t *testContext) theConsolidationShouldNotBeCached() error {
	n, err := t.consolidationCacheKeys()
	if err != nil {
		return err
	}
	if n != 0 {
		return errors.New("expected no cached consolidation for the current user")
	}
	return nil
}

func (t *testContext) theCachedConsolidationExpires() error {
	mock.RedisServer().FastForward(time.Hour)
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
