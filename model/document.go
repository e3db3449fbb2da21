package model

// Document is a flexible map representing a JSON document.
// The documentID is the only required field for document identification.
// Searchable fields hold text; payload fields hold delimited payload text
// ("red|5 blue|2"), a list of such strings, or a {term: number} object.
type Document map[string]interface{}

// GetDocumentID returns the documentID if it's stored in the document map under "documentID" key.
func (d Document) GetDocumentID() (string, bool) {
	if id, ok := d["documentID"]; ok {
		if str, sok := id.(string); sok {
			if str != "" {
				return str, true
			}
		}
	}
	return "", false
}
