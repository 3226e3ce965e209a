package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kidstore/internal/store"
)

const (
	diagnosticErrorLength = 50
	diagnosticCollections = 10
)

// DiagnosticsEnv records, at startup, which database settings were present.
// Values are never reported.
type DiagnosticsEnv struct {
	DatabaseURLSet  bool
	DatabaseNameSet bool
}

// Diagnostics reports process and database status. Store failures become
// status strings; the endpoint always answers 200.
func Diagnostics(docs store.DocumentStore, env DiagnosticsEnv) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /test"

		response := gin.H{
			"backend":           "✅ Running",
			"database":          "❌ Not Available",
			"database_url":      nil,
			"database_name":     nil,
			"connection_status": "Not Connected",
			"collections":       []string{},
		}

		probeDatabase(c, docs, response)

		response["database_url"] = setStatus(env.DatabaseURLSet)
		response["database_name"] = setStatus(env.DatabaseNameSet)

		zap.L().Debug("diagnostics", zap.String("route", route), zap.Any("database", response["database"]))
		c.JSON(http.StatusOK, response)
	}
}

func probeDatabase(c *gin.Context, docs store.DocumentStore, response gin.H) {
	defer func() {
		if r := recover(); r != nil {
			response["database"] = "❌ Error: " + truncate(fmt.Sprint(r), diagnosticErrorLength)
		}
	}()

	if docs == nil || !docs.Connected() {
		response["database"] = "⚠️  Available but not initialized"
		return
	}

	response["database"] = "✅ Available"
	response["database_url"] = "✅ Configured"
	response["database_name"] = "✅ Connected"
	if name := docs.Name(); name != "" {
		response["database_name"] = name
	}
	response["connection_status"] = "Connected"

	names, err := docs.ListCollectionNames(c.Request.Context())
	if err != nil {
		response["database"] = "⚠️  Connected but Error: " + truncate(err.Error(), diagnosticErrorLength)
		return
	}
	if len(names) > diagnosticCollections {
		names = names[:diagnosticCollections]
	}
	if names == nil {
		names = []string{}
	}
	response["collections"] = names
	response["database"] = "✅ Connected & Working"
}

func setStatus(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}
