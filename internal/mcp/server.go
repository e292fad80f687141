// Package mcp exposes game construction as MCP tools over stdio.
package mcp

import (
	"bytes"
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"mediator/internal/bargain"
	"mediator/internal/game"
	"mediator/internal/logging"
)

// Version is reported in the MCP handshake.
var Version = "dev"

// Server wraps the MCP SDK server. When OutDir is set, build_game can save
// the .efg file under it.
type Server struct {
	MCPServer *sdkmcp.Server
	OutDir    string
}

// NewServer creates an MCP server with the game tools registered.
func NewServer(outDir string) *Server {
	s := &Server{OutDir: outDir}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "mediator", Version: Version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "build_game",
		Description: "Build the three-party mediated bargaining game. Returns the five outcomes with payoffs and the coalition every action profile resolves to.",
	}, s.handleBuildGame)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "export_efg",
		Description: "Build the game and return it as Gambit .efg text.",
	}, s.handleExportEFG)
}

// --- Tool input/output types ---

type paramsInput struct {
	M        []float64 `json:"m" jsonschema:"military capacities, one per party, all positive"`
	C        []float64 `json:"c" jsonschema:"war costs, one per party"`
	X        []float64 `json:"x" jsonschema:"ideal points on [0,1], one per party"`
	Mediator float64   `json:"mediator" jsonschema:"mediator proposal x3"`
}

func (in paramsInput) params() bargain.Params {
	return bargain.Params{M: in.M, C: in.C, X: in.X, Mediator: in.Mediator}
}

type buildGameInput struct {
	paramsInput
	Save bool `json:"save,omitempty" jsonschema:"also write the .efg file under the server output directory"`
}

type outcomeOutput struct {
	Label     string    `json:"label"`
	Coalition []int     `json:"coalition"`
	Payoffs   []float64 `json:"payoffs"`
}

type leafOutput struct {
	Profile  []string `json:"profile"`
	Fighters []int    `json:"fighters"`
	Outcome  string   `json:"outcome"`
}

type buildGameOutput struct {
	Title    string          `json:"title"`
	Outcomes []outcomeOutput `json:"outcomes"`
	Leaves   []leafOutput    `json:"leaves"`
	Counts   map[string]int  `json:"counts"`
	Path     string          `json:"path,omitempty"`
}

type exportEFGOutput struct {
	Title string `json:"title"`
	EFG   string `json:"efg"`
}

// --- Tool handlers ---

func (s *Server) handleBuildGame(ctx context.Context, _ *sdkmcp.CallToolRequest, input buildGameInput) (*sdkmcp.CallToolResult, buildGameOutput, error) {
	m, err := game.New(input.params())
	if err != nil {
		return nil, buildGameOutput{}, fmt.Errorf("build_game: %w", err)
	}

	out := buildGameOutput{
		Title:  m.Title(),
		Counts: map[string]int{"peace": 0, "dyadic": 0, "general_war": 0},
	}
	for _, o := range m.Outcomes().Outcomes() {
		out.Outcomes = append(out.Outcomes, outcomeOutput{
			Label:     o.Label,
			Coalition: members(o.Coalition),
			Payoffs:   append([]float64(nil), o.Payoffs[:]...),
		})
	}
	for _, l := range m.Leaves() {
		out.Leaves = append(out.Leaves, leafOutput{
			Profile:  append([]string(nil), l.Profile[:]...),
			Fighters: members(l.Fighters),
			Outcome:  l.Outcome.Label,
		})
		switch l.Fighters.Size() {
		case 0:
			out.Counts["peace"]++
		case 2:
			out.Counts["dyadic"]++
		default:
			out.Counts["general_war"]++
		}
	}

	if input.Save {
		if s.OutDir == "" {
			return nil, buildGameOutput{}, fmt.Errorf("build_game: server has no output directory")
		}
		path, err := m.Save(s.OutDir)
		if err != nil {
			return nil, buildGameOutput{}, fmt.Errorf("build_game: %w", err)
		}
		out.Path = path
	}
	logging.New("mcp").Info("game built", "title", out.Title, "saved", out.Path != "")
	return nil, out, nil
}

func (s *Server) handleExportEFG(ctx context.Context, _ *sdkmcp.CallToolRequest, input paramsInput) (*sdkmcp.CallToolResult, exportEFGOutput, error) {
	m, err := game.New(input.params())
	if err != nil {
		return nil, exportEFGOutput{}, fmt.Errorf("export_efg: %w", err)
	}
	var buf bytes.Buffer
	if err := m.WriteEFG(&buf); err != nil {
		return nil, exportEFGOutput{}, fmt.Errorf("export_efg: %w", err)
	}
	return nil, exportEFGOutput{Title: m.Title(), EFG: buf.String()}, nil
}

func members(c bargain.Coalition) []int {
	return append([]int{}, c.Members()...)
}
