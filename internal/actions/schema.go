package actions

import (
	"encoding/json"

	llmclient "reactagent/internal/llmClient"
)

// Tool names as the model sees them.
const (
	StoreInfoName          = "storeInfo"
	SearchRepositoriesName = "searchRepositories"
	GenerateCodeName       = "generateCode"
	RunProjectName         = "runProject"
	EditCodeName           = "editCode"
)

// ToolTable is the schema table sent with every conversation call.
var ToolTable = []llmclient.ToolSpec{
	{
		Name:        StoreInfoName,
		Description: "Stores one piece of information the user gave about the project.",
		Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {
    "info": {"type": "string", "description": "The information to store."}
  },
  "required": ["info"],
  "additionalProperties": false
}`),
	},
	{
		Name:        SearchRepositoriesName,
		Description: "Reads the READMEs of the user's GitHub repositories and stores a summary of them.",
		Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {
    "username": {"type": "string", "description": "The user's GitHub username. Ask the user before using this tool."}
  },
  "required": ["username"],
  "additionalProperties": false
}`),
	},
	{
		Name:        GenerateCodeName,
		Description: "Generates the code for the project using the stored information.",
		Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {
    "projectSummary": {"type": "string", "description": "The summary of the project. Make it simple."},
    "projectName": {"type": "string", "description": "The name of the project."}
  },
  "required": ["projectSummary", "projectName"],
  "additionalProperties": false
}`),
	},
	{
		Name:        RunProjectName,
		Description: "Creates, installs and starts the project with the generated code.",
		Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {},
  "additionalProperties": false
}`),
	},
	{
		Name:        EditCodeName,
		Description: "Edits the generated code.",
		Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {
    "changes": {"type": "string", "description": "The changes to be made in the code."}
  },
  "required": ["changes"],
  "additionalProperties": false
}`),
	},
}

func specFor(name string) llmclient.ToolSpec {
	for _, s := range ToolTable {
		if s.Name == name {
			return s
		}
	}
	panic("actions: no schema for tool " + name)
}
