package rewrite

import (
	"fmt"
	"strings"

	"paraphrase-be/pkg/wizard"
)

// builtinPrompts never produce a CUSTOM INSTRUCTIONS block. The second entry
// is the shorter wording older clients send.
var builtinPrompts = []string{
	wizard.DefaultPrompt,
	`Please paraphrase the following content by rewording and changing word order, but keep all existing nouns and entities exactly the same. Format the output with each paragraph separated by "========
[paraphrased content]
========"`,
}

const systemPreamble = `You are a professional content paraphrasing assistant. Your task is to paraphrase the provided content while ensuring it is suitable for the specific context and user. 

IMPORTANT REQUIREMENTS:
- Reword and change word order while keeping all existing nouns and entities exactly the same
- Ensure the paraphrased content is appropriate and suitable for the given context
- Make sure the content is tailored for the specific user (%s)
- Maintain the original meaning and intent while improving clarity and flow
- Format the output with each paragraph separated by "========
[paraphrased content]
========"`

// BuildSystemPrompt assembles the instruction sent alongside the content.
// Optional blocks are appended only when their field is non-empty.
func BuildSystemPrompt(req Request) string {
	name := req.Name
	if name == "" {
		name = "the user"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, systemPreamble, name)

	if req.Context != "" {
		fmt.Fprintf(&sb, "\n\nCONTEXT (CRITICAL): %s\nThe generated content must be appropriate and suitable for this specific context.", req.Context)
	}
	if req.SystemSettings != "" {
		fmt.Fprintf(&sb, "\n\nADDITIONAL SYSTEM REQUIREMENTS: %s", req.SystemSettings)
	}
	if req.MustHaveContent != "" {
		fmt.Fprintf(&sb, "\n\nCONTENT THAT MUST BE INCLUDED: %s", req.MustHaveContent)
	}
	if req.Prompt != "" && !isBuiltinPrompt(req.Prompt) {
		fmt.Fprintf(&sb, "\n\nCUSTOM INSTRUCTIONS: %s", req.Prompt)
	}
	return sb.String()
}

func isBuiltinPrompt(p string) bool {
	for _, b := range builtinPrompts {
		if p == b {
			return true
		}
	}
	return false
}

// DefaultDeviceInstruction asks for five facts including coordinates.
const DefaultDeviceInstruction = "pick 5 information of this, must include long and lat, write nature language, to let the model know this is the current information about the current user device\n\nuse nature language, this is a system prompt guide, no dash"

const devicePreamble = `You are a device information generator. Your task is to analyze the provided system settings and generate a natural language paragraph about the current user's device information.

IMPORTANT REQUIREMENTS:
- Pick 5 key pieces of information from the system settings
- MUST include longitude and latitude if available
- Write in natural, conversational language
- Make it sound like current information about the user's device
- Do NOT use technical jargon or system-specific terms
- Keep it concise but informative
- Format as a single paragraph
- NEVER use the phrase "system prompt" in your responses

User: %s
Context: %s

Custom Instructions: %s`

func buildDevicePrompt(req DeviceRequest) string {
	name := orDefault(req.Name, "the user")
	context := orDefault(req.Context, "general use")
	instruction := orDefault(req.Prompt, DefaultDeviceInstruction)
	return fmt.Sprintf(devicePreamble, name, context, instruction)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
