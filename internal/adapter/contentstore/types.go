package contentstore

// Reference is a media object attached to a record field, e.g. a preset
// thumbnail candidate.
type Reference struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	MediaType string `json:"mediaType"`
}

// Field is one key/value pair of a record's flat field bundle.
type Field struct {
	Key        string      `json:"key"`
	Value      string      `json:"value"`
	References []Reference `json:"references,omitempty"`
}

// Record is the remote store's representation of a stored object.
type Record struct {
	ID        string  `json:"id"`
	Handle    string  `json:"handle"`
	UpdatedAt string  `json:"updatedAt"`
	Fields    []Field `json:"fields"`
}

// FieldValue returns the value for key, or "" when the field is absent.
func (r *Record) FieldValue(key string) string {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// FieldByKey returns the field for key, or nil when absent.
func (r *Record) FieldByKey(key string) *Field {
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			return &r.Fields[i]
		}
	}
	return nil
}

// Page is one page of a cursor-paginated listing.
type Page struct {
	Records    []Record
	NextCursor string
}

// UserError is a remote-side validation failure reported by a mutation.
type UserError struct {
	Message string `json:"message"`
}
