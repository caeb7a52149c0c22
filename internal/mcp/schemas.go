package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func strategyProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Chunking strategy. Unknown values fall back to balanced.",
		"enum":        []string{"balanced", "semantic", "sliding_window"},
		"default":     "balanced",
	}
}

func sizeProperty(description string, defaultValue interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"default":     defaultValue,
		"minimum":     0,
	}
}

// chunkDocumentTool returns the tool definition for chunk_document
func chunkDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_document",
		Description: "Split document text into retrieval-sized chunks with balanced, semantic or sliding window strategy",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Raw document text (already extracted from its source)",
				},
				"strategy":       strategyProperty(),
				"min_chunk_size": sizeProperty("Balanced: minimum chunk length in characters", 250),
				"max_chunk_size": sizeProperty("Balanced: soft maximum chunk length in characters", 800),
				"overlap_size":   sizeProperty("Balanced: characters of trailing context carried into the next chunk", 100),
				"target_size":    sizeProperty("Semantic: target chunk length in characters", 500),
				"tolerance": map[string]interface{}{
					"type":        "number",
					"description": "Semantic: chunks may grow to target_size * (1 + tolerance)",
					"default":     0.3,
					"minimum":     0,
				},
				"window_size":    sizeProperty("Sliding window: window width in characters", 600),
				"window_overlap": sizeProperty("Sliding window: characters shared by consecutive windows", 150),
				"include_stats": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include chunk statistics in the response",
					"default":     true,
				},
			},
			Required: []string{"text"},
		},
	}
}

// chunkFilesTool returns the tool definition for chunk_files
func chunkFilesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_files",
		Description: "Load text, markdown or PDF files and chunk them concurrently",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"description": "Absolute paths of files to chunk (.txt, .md, .pdf)",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
				"strategy": strategyProperty(),
				"workers": map[string]interface{}{
					"type":        "integer",
					"description": "Number of files chunked concurrently (0 uses the server setting)",
					"default":     0,
					"minimum":     0,
				},
			},
			Required: []string{"paths"},
		},
	}
}

// analyzeChunksTool returns the tool definition for analyze_chunks
func analyzeChunksTool() mcp.Tool {
	return mcp.Tool{
		Name:        "analyze_chunks",
		Description: "Compute count, length and token statistics for a list of chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"chunks": map[string]interface{}{
					"type":        "array",
					"description": "Chunk texts to analyze",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"chunks"},
		},
	}
}

// getConfigTool returns the tool definition for get_config
func getConfigTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_config",
		Description: "Return the server's effective chunking configuration",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
