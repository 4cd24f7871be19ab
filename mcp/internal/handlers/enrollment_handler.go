package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/doctoryes/insights-data/client"
)

// EnrollmentHandler exposes the course enrollment queries as MCP tools.
type EnrollmentHandler struct {
	client *client.Client
}

func NewEnrollmentHandler(c *client.Client) *EnrollmentHandler { return &EnrollmentHandler{client: c} }

// enrollmentTool binds a tool name to the filter it queries. single marks the
// queries that return only the first record.
type enrollmentTool struct {
	name        string
	description string
	filter      client.Filter
	single      bool
}

var enrollmentTools = []enrollmentTool{
	{
		name:        "get_current_course_enrollment",
		description: "Current enrollment count for a course (single record)",
		filter:      client.FilterNone,
		single:      true,
	},
	{
		name:        "get_current_course_enrollment_by_mode",
		description: "Current enrollment for a course broken down by mode: audit, credit, honor, professional, verified (single record)",
		filter:      client.FilterMode,
		single:      true,
	},
	{
		name:        "get_current_course_enrollment_by_birth_year",
		description: "Current enrollment for a course, one record per learner birth year",
		filter:      client.FilterBirthYear,
	},
	{
		name:        "get_current_course_enrollment_by_education",
		description: "Current enrollment for a course, one record per education level",
		filter:      client.FilterEducation,
	},
	{
		name:        "get_current_course_enrollment_by_location",
		description: "Current enrollment for a course, one record per country",
		filter:      client.FilterLocation,
	},
}

const courseIDDescription = "Course identifier, e.g. edX/DemoX/Demo_Course or course-v1:edX+DemoX+Demo_Course"

func (eh *EnrollmentHandler) RegisterTools(s *server.MCPServer) error {
	for _, et := range enrollmentTools {
		tool := mcp.NewTool(et.name,
			mcp.WithDescription(et.description),
			mcp.WithString("course_id", mcp.Required(), mcp.Description(courseIDDescription)),
		)
		s.AddTool(tool, eh.handlerFor(et))
	}

	// get_course_enrollment: raw record list for any filter
	generic := mcp.NewTool("get_course_enrollment",
		mcp.WithDescription("Raw enrollment records for a course, optionally filtered; returns a JSON list"),
		mcp.WithString("course_id", mcp.Required(), mcp.Description(courseIDDescription)),
		mcp.WithString("filter",
			mcp.Description("Breakdown to query; omit for the plain enrollment endpoint"),
			mcp.Enum("none", "mode", "birth_year", "education", "location"),
		),
	)
	s.AddTool(generic, eh.handleGetCourseEnrollment)
	return nil
}

func (eh *EnrollmentHandler) handlerFor(et enrollmentTool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		courseID, err := req.RequireString("course_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		log.Debug().Str("tool", et.name).Str("course_id", courseID).Msg("enrollment tool invoked")

		start := time.Now()
		var out any
		if et.single {
			out, err = eh.current(ctx, courseID, et.filter)
		} else {
			out, err = eh.client.GetCourseEnrollment(ctx, courseID, et.filter)
		}
		elapsed := time.Since(start)
		if err != nil {
			log.Error().Err(err).Str("tool", et.name).Str("course_id", courseID).Dur("elapsed", elapsed).Msg("enrollment tool failed")
			return mcp.NewToolResultError(fmt.Sprintf("failed to get enrollment: %v", err)), nil
		}

		log.Debug().Str("tool", et.name).Dur("elapsed", elapsed).Msg("enrollment tool completed")
		return jsonResult(out)
	}
}

func (eh *EnrollmentHandler) current(ctx context.Context, courseID string, filter client.Filter) (client.EnrollmentRecord, error) {
	if filter == client.FilterMode {
		return eh.client.GetCurrentCourseEnrollmentByMode(ctx, courseID)
	}
	return eh.client.GetCurrentCourseEnrollment(ctx, courseID)
}

func (eh *EnrollmentHandler) handleGetCourseEnrollment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	courseID, err := req.RequireString("course_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var raw string
	if v, ok := req.GetArguments()["filter"].(string); ok {
		raw = v
	}
	filter, err := client.ParseFilter(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("course_id", courseID).Str("filter", filter.String()).Msg("get_course_enrollment invoked")

	start := time.Now()
	records, err := eh.client.GetCourseEnrollment(ctx, courseID, filter)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("course_id", courseID).Str("filter", filter.String()).Dur("elapsed", elapsed).Msg("get_course_enrollment failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to get enrollment: %v", err)), nil
	}
	return jsonResult(records)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
