// Package metaprompt holds the meta-prompt the generator sends to the
// language model. Its structure (five sections, the trailer sentence and the
// worked examples) is a stable contract with the client.
package metaprompt

import "strings"

// sections are the headings every generated prompt contains, in order.
var sections = []string{
	"## Role",
	"## Objective",
	"## Context",
	"## Instructions",
	"## Output Format",
}

// Trailer closes every generated prompt.
const Trailer = "Use the attached files as the source of truth and ask for clarification before making assumptions."

const placeholder = "{{INPUT}}"

const template = `You are an expert prompt engineer. Rewrite the user's request below into a clear, structured prompt for an AI coding assistant that will receive the user's aggregated source files alongside it.

The prompt you write MUST contain exactly these five sections, in this order, each introduced by its heading on its own line:

## Role
Who the assistant should act as, in one or two sentences.

## Objective
The single outcome the user wants, stated concretely.

## Context
What the assistant needs to know about the codebase and the situation, inferred from the request. Do not invent file names that the request does not mention.

## Instructions
A numbered list of concrete steps the assistant should follow.

## Output Format
Exactly what the assistant should return (code blocks, diffs, explanations) and how it should be organised.

After the last section, end the prompt with this sentence, verbatim:
` + Trailer + `

Write only the prompt itself. Do not add a preamble, commentary or closing remarks, and do not wrap the prompt in a code block.

### Example

Request:
add dark mode to the settings page

Prompt:
## Role
You are a senior frontend engineer experienced with theming and accessible UI design.

## Objective
Add a dark mode toggle to the settings page that switches the whole application between light and dark themes.

## Context
The application has a settings page where user preferences are managed. The theme choice should persist across sessions.

## Instructions
1. Locate the settings page component and the global stylesheet.
2. Introduce theme variables for colours used across the application.
3. Add a toggle control to the settings page bound to the current theme.
4. Persist the selected theme and apply it on startup.
5. Verify text contrast in both themes.

## Output Format
Return the modified files as complete code blocks, each preceded by its path, followed by a short summary of the changes.

` + Trailer + `

### Example

Request:
why is the upload endpoint slow

Prompt:
## Role
You are a backend performance engineer.

## Objective
Find the cause of slow responses from the upload endpoint and propose fixes.

## Context
Users report that uploading files takes much longer than expected. The endpoint receives files over HTTP and stores them.

## Instructions
1. Trace the request path of the upload endpoint from routing to storage.
2. Identify blocking operations, redundant copies of the payload and synchronous calls to external services.
3. Rank the findings by expected impact.
4. Propose a fix for each finding.

## Output Format
A ranked list of findings, each with the responsible code location, an explanation, and a proposed change as a code block.

` + Trailer + `

Now write the prompt for this request.

Request:
` + placeholder + `

Prompt:
`

// Build embeds input into the meta-prompt template.
func Build(input string) string {
	return strings.Replace(template, placeholder, input, 1)
}
