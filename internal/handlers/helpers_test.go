package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kidstore/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(products store.ProductRepository, orders store.OrderRepository, docs store.DocumentStore, env DiagnosticsEnv) *gin.Engine {
	r := gin.New()
	r.GET("/", Home())
	r.GET("/test", Diagnostics(docs, env))
	r.GET("/api/health", Health())
	r.POST("/api/products", CreateProduct(products))
	r.POST("/api/products/search", SearchProducts(products))
	r.GET("/api/products/:id", GetProduct(products))
	r.POST("/api/orders", CreateOrder(orders))
	return r
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// memoryStore is an in-memory DocumentStore that understands the filter
// shapes produced by ProductQuery and id lookups.
type memoryStore struct {
	mu   sync.Mutex
	docs map[string][]bson.M
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: map[string][]bson.M{}}
}

func (m *memoryStore) InsertOne(_ context.Context, collection string, document interface{}) (primitive.ObjectID, error) {
	doc, err := toM(document)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := primitive.NewObjectID()
	doc["_id"] = id

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[collection] = append(m.docs[collection], doc)
	return id, nil
}

func (m *memoryStore) Find(_ context.Context, collection string, filter bson.D, limit int64) ([]bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]bson.M, 0)
	for _, doc := range m.docs[collection] {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if !matches(doc, filter) {
			continue
		}
		cp, err := toM(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

func (m *memoryStore) ListCollectionNames(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		names = append(names, name)
	}
	return names, nil
}

func (m *memoryStore) Name() string   { return "memory" }
func (m *memoryStore) Connected() bool { return true }

func (m *memoryStore) all(collection string) []bson.M {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[collection]
}

func toM(document interface{}) (bson.M, error) {
	data, err := bson.Marshal(document)
	if err != nil {
		return nil, err
	}
	var out bson.M
	if err := bson.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func matches(doc bson.M, filter bson.D) bool {
	for _, e := range filter {
		if e.Key != "$or" {
			if !reflect.DeepEqual(doc[e.Key], e.Value) {
				return false
			}
			continue
		}

		matched := false
		for _, alt := range e.Value.(bson.A) {
			for field, cond := range alt.(bson.M) {
				c := cond.(bson.M)
				re := regexp.MustCompile("(?" + c["$options"].(string) + ")" + c["$regex"].(string))
				if s, ok := doc[field].(string); ok && re.MatchString(s) {
					matched = true
				}
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
