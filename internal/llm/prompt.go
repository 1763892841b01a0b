package llm

import "strings"

// maxInvoiceChars caps the invoice text sent to a backend. Dates sit on the
// first page of any sane invoice.
const maxInvoiceChars = 8000

// BuildSystemPrompt instructs the model to return nothing but the strict
// JSON date object. The same schema is enforced locally after the call.
func BuildSystemPrompt() string {
	parts := []string{
		"You are an invoice date extractor.",
		"Return ONLY JSON that matches the provided JSON Schema.",
		"The JSON has exactly one key, 'invoice_date', holding the invoice date in ISO-8601 form (YYYY-MM-DD).",
		"If several dates appear, pick the invoice issue date, never a due date or a delivery date.",
		"Never output null, explanations, or markdown.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt wraps the invoice text in explicit markers so the model
// cannot mistake document content for instructions.
func BuildUserPrompt(invoiceText string) string {
	text := strings.TrimSpace(invoiceText)
	truncated := false
	if len(text) > maxInvoiceChars {
		text = text[:maxInvoiceChars]
		truncated = true
	}

	var b strings.Builder
	b.WriteString("The following is the text of an invoice. Extract the invoice date only.\n\n")
	b.WriteString("--- BEGIN INVOICE TEXT ---\n")
	b.WriteString(text)
	if truncated {
		b.WriteString("\n…(truncated)")
	}
	b.WriteString("\n--- END INVOICE TEXT ---")
	return b.String()
}
