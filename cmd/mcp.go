package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"jsinline.dev/pkg/jsinline/internal/domain"
	m "jsinline.dev/pkg/jsinline/internal/model"
)

// SourceInput is the source text a tool works on.
type SourceInput struct {
	Source   string `json:"source" jsonschema:"JavaScript or TypeScript source text"`
	Language string `json:"language,omitempty" jsonschema:"javascript, typescript or tsx (default: detected from path, else javascript)"`
	Path     string `json:"path,omitempty" jsonschema:"file name used to detect the language and in messages"`
}

// PositionInput is a source text with a one-based position in it.
type PositionInput struct {
	Source    string `json:"source" jsonschema:"JavaScript or TypeScript source text"`
	Language  string `json:"language,omitempty" jsonschema:"javascript, typescript or tsx (default: detected from path, else javascript)"`
	Path      string `json:"path,omitempty" jsonschema:"file name used to detect the language and in messages"`
	Line      int    `json:"line" jsonschema:"one-based line of the declaration"`
	Character int    `json:"character" jsonschema:"one-based column of the declaration"`
}

// RenameInput is a position with the new name of the binding there.
type RenameInput struct {
	Source    string `json:"source" jsonschema:"JavaScript or TypeScript source text"`
	Language  string `json:"language,omitempty" jsonschema:"javascript, typescript or tsx (default: detected from path, else javascript)"`
	Path      string `json:"path,omitempty" jsonschema:"file name used to detect the language and in messages"`
	Line      int    `json:"line" jsonschema:"one-based line of the binding"`
	Character int    `json:"character" jsonschema:"one-based column of the binding"`
	NewName   string `json:"new_name" jsonschema:"new name of the binding"`
}

// mcpCmd represents the mcp command.
var mcpCmd = newMCPCmd()

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the refactorings as MCP tools over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the tools
inline_variable, inline_function, rename_symbol and list_inlinables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := newMCPServer(refactorer)

			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func newMCPServer(r domain.Refactorer) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "jsinline",
		Version: buildVersion(),
	}, nil)

	tools := &mcpTools{refactorer: r}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inline_variable",
		Description: "Inline the variable, destructured field or TypeScript type alias declared at a position: every reference is replaced by the value and the declaration is removed. Returns the new source.",
	}, tools.inlineVariable)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inline_function",
		Description: "Inline the function declared at a position into all of its call sites and remove it. Returns the new source.",
	}, tools.inlineFunction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rename_symbol",
		Description: "Rename the binding at a position and every reference to it. Returns the new source.",
	}, tools.renameSymbol)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_inlinables",
		Description: "List the declarations of a source that can be inlined, as JSON, with their position, reference count and verdict.",
	}, tools.listInlinables)

	return server
}

type mcpTools struct {
	refactorer domain.Refactorer
}

func (t *mcpTools) inlineVariable(ctx context.Context, _ *mcp.CallToolRequest, input PositionInput) (*mcp.CallToolResult, any, error) {
	return t.refactor(ctx, input, m.RefactoringInlineVariable, "")
}

func (t *mcpTools) inlineFunction(ctx context.Context, _ *mcp.CallToolRequest, input PositionInput) (*mcp.CallToolResult, any, error) {
	return t.refactor(ctx, input, m.RefactoringInlineFunction, "")
}

func (t *mcpTools) renameSymbol(ctx context.Context, _ *mcp.CallToolRequest, input RenameInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.NewName) == "" {
		return errorResult("new_name is required"), nil, nil
	}

	position := PositionInput{
		Source:    input.Source,
		Language:  input.Language,
		Path:      input.Path,
		Line:      input.Line,
		Character: input.Character,
	}

	return t.refactor(ctx, position, m.RefactoringRename, input.NewName)
}

func (t *mcpTools) listInlinables(ctx context.Context, _ *mcp.CallToolRequest, input SourceInput) (*mcp.CallToolResult, any, error) {
	targets, err := t.refactorer.Targets(ctx, input.toSource())
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	data, err := json.MarshalIndent(targets, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode targets: %w", err)
	}

	return textResult(string(data)), nil, nil
}

func (t *mcpTools) refactor(ctx context.Context, input PositionInput, refactoring m.Refactoring, newName string) (*mcp.CallToolResult, any, error) {
	source := SourceInput{Source: input.Source, Language: input.Language, Path: input.Path}
	request := m.Request{
		Path:        source.path(),
		Refactoring: refactoring,
		Line:        input.Line,
		Character:   input.Character,
		NewName:     newName,
	}

	outcome, err := t.refactorer.Refactor(ctx, source.toSource(), request, domain.FixedPrompter(newName))
	if err != nil {
		var reason m.Reason
		if errors.As(err, &reason) {
			return errorResult(fmt.Sprintf("%s: %s", reason, reason.Error())), nil, nil
		}

		slog.Error("mcp refactoring failed", "tool", refactoring, "error", err)

		return errorResult(err.Error()), nil, nil
	}

	result := textResult(outcome.After)
	for _, warning := range outcome.Warnings {
		result.Content = append(result.Content, &mcp.TextContent{Text: "warning: " + warning.Error()})
	}

	return result, nil, nil
}

func (in SourceInput) path() m.Path {
	if in.Path != "" {
		return m.Path(in.Path)
	}

	return "input"
}

func (in SourceInput) toSource() m.Source {
	lang := m.LanguageFor(in.path())

	switch m.Language(strings.ToLower(in.Language)) {
	case m.JavaScript:
		lang = m.JavaScript
	case m.TypeScript:
		lang = m.TypeScript
	case m.TSX:
		lang = m.TSX
	}

	return m.Source{
		Origin:   &m.File{Path: in.path()},
		Language: lang,
		Content:  []byte(in.Source),
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "dev"
	}

	return info.Main.Version
}
