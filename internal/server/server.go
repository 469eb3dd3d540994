// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations
// and injects them into the tools that depend on abstractions. No
// business logic lives here — only wiring.
package server

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"sitechat/internal/config"
	"sitechat/internal/notify"
	"sitechat/internal/project"
	"sitechat/internal/store"
	"sitechat/internal/tools"
	"sitechat/internal/whatsapp"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
// This is the single place where all dependencies are resolved.
//
// The returned cleanup function closes the store's database connection
// and must be called on shutdown (typically via defer). It is always
// non-nil and safe to call even if store init failed.
func New(cfg config.Config) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	session := whatsapp.NewSession()
	channel := whatsapp.NewLoopback(cfg.SelfName)

	// Pairing resumes from the persisted token when one exists. A
	// failed handshake leaves the session not ready: project tools
	// still work, channel tools answer "not connected".
	tokens := whatsapp.NewTokenStore(cfg.DataDir)
	if err := whatsapp.Pair(session, tokens); err != nil {
		log.Printf("WARNING: WhatsApp pairing failed: %v", err)
	}

	// The sqlite store is an independent subsystem: if it fails to
	// open, projects fall back to the in-memory registry and the
	// server keeps working without durability.
	cleanup := noop
	var repo project.Repository
	db, dbErr := store.Open(cfg.DataDir)
	if dbErr != nil {
		log.Printf("WARNING: durable store disabled: %v", dbErr)
		repo = project.NewRegistry()
	} else {
		repo = db
		cleanup = func() {
			if err := db.Close(); err != nil {
				log.Printf("WARNING: store close: %v", err)
			}
		}
	}

	engine := notify.NewEngine(session, channel)
	if dbErr == nil {
		engine.SetSink(db)
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"sitechat",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register project tools ---

	createTool := tools.NewCreateProjectTool(repo)
	s.AddTool(createTool.Definition(), createTool.Handle)

	progressTool := tools.NewTrackProgressTool(repo, engine)
	s.AddTool(progressTool.Definition(), progressTool.Handle)

	inspectionTool := tools.NewScheduleInspectionTool(repo, engine)
	s.AddTool(inspectionTool.Definition(), inspectionTool.Handle)

	updateTool := tools.NewSendUpdateTool(repo, engine)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	// --- Register WhatsApp channel tools ---

	groupsTool := tools.NewListGroupsTool(session, channel)
	s.AddTool(groupsTool.Definition(), groupsTool.Handle)

	readTool := tools.NewReadMessagesTool(session, channel, cfg.MessageLimit)
	s.AddTool(readTool.Definition(), readTool.Handle)

	sendTool := tools.NewSendMessageTool(session, channel)
	s.AddTool(sendTool.Definition(), sendTool.Handle)

	// --- Register construction calculators ---

	materialsTool := tools.NewCalculateMaterialsTool()
	s.AddTool(materialsTool.Definition(), materialsTool.Handle)

	costTool := tools.NewEstimateCostTool()
	s.AddTool(costTool.Definition(), costTool.Handle)

	complianceTool := tools.NewComplianceCheckTool()
	s.AddTool(complianceTool.Definition(), complianceTool.Handle)

	weatherTool := tools.NewWeatherImpactTool()
	s.AddTool(weatherTool.Definition(), weatherTool.Handle)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when the durable
// store is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use sitechat effectively.
func serverInstructions() string {
	return `You have access to sitechat, a construction site assistant MCP server
that manages projects and communicates over WhatsApp.

## Tool Groups

### Project tracking
- create_project: Register a project with its site, WhatsApp contact, timeline, and budget
- track_progress: Update phase and completion percentage. Completion values that are
  multiples of 25 (25/50/75/100) automatically send a milestone notification to the
  project contact — you don't need to send one yourself.
- schedule_inspection: Book a quality inspection. A WhatsApp reminder goes to the
  project contact automatically.
- send_whatsapp_update: Send an explicit update with an urgency level (low/medium/high).

### WhatsApp channel
- list_groups: List the groups the account belongs to
- read_group_messages: Read recent group messages (oldest first). Group names match
  on partial, case-insensitive text — "site" finds "Site Updates 2026".
- send_group_message: Post a message to a group

### Construction calculators (work offline, no WhatsApp needed)
- calculate_materials: Material take-off for a foundation, wall, slab, or beam
- estimate_cost: Price a material quantity
- compliance_check: Check dimensions against residential/commercial/industrial codes
- weather_impact: Assess whether current conditions allow an activity

## Important Rules
- Channel tools require a paired WhatsApp session. If a tool answers
  "WhatsApp not connected", tell the user to complete pairing first — project
  tracking and the calculators keep working regardless.
- Milestone and inspection notifications are automatic. Never duplicate them
  with send_whatsapp_update.
- Use projectId values exactly as returned by create_project (they start with "proj_").
- When a group name doesn't resolve, the error lists the available groups — pick
  the closest match or ask the user.`
}
