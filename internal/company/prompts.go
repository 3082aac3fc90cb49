package company

import "fmt"

// Base prompts ask the model for a minimal JSON object holding exactly the
// target semantic field.
const (
	promptName        = `Extract the company name in JSON format. Use the schema: {"name": "string"}. Please return only the JSON object without any additional text:`
	promptDescription = `Extract the description in JSON format. Use the schema: {"description": "string"}. Please return only the JSON object without any additional text:`
	promptAddress     = `Extract the address in JSON format. Use the schema: {"address": "string"}. Please return only the JSON object without any additional text:`
	promptDate        = `Extract the date in JSON format. Use the schema: {"date": "string"}. Please return only the JSON object without any additional text:`
)

// fieldPrompt builds the full instruction for a slot's summarization call.
func fieldPrompt(d Descriptor) string {
	return fmt.Sprintf("%s\n\nPlease return only the value for %q without any additional formatting.", d.Prompt, d.Field)
}
