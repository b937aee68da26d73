package actions

import "reactagent/internal/llmtool"

var readmeSummarizationPrompt = llmtool.StructuredPromptSpec{
	Purpose:    "Summarize the README file of one of the user's GitHub repositories.",
	Background: "You are a skilled reader. The summary is used to describe the user's work on a personal website.",
	Rules: []string{
		"Find the main points that show the technical and non-technical aspects of the project.",
		"Respond only with the main points of the README.",
	},
}.MustRender()

var codeGenerationPrompt = llmtool.StructuredPromptSpec{
	Purpose:    "Generate the code for the project.",
	Background: "You write consistent and clean javascript for a React single-page application.",
	Constraints: []string{
		"Generate an App component and export it as default.",
		"The code must fit in a single file.",
		"Include the necessary dependencies, styles and scripts.",
		"Do not import local files. Place the css in the main code.",
		"Do not generate the package.json file. It is generated automatically.",
	},
	Rules: []string{
		"Return the code enclosed in triple backticks.",
	},
	Examples: []llmtool.PromptExample{
		{Speaker: "assistant", Text: "```\nfunction App() {\n    return \"Hello World!\";\n}\n\nexport default App;\n```"},
	},
}.MustRender()

// CombinePrompt asks the conversation model to merge per-repository summaries.
func CombinePrompt(summaries []string) string {
	return "Please make a general summary from these README files:\n" + bulletList(summaries)
}
