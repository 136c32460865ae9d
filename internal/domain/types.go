package domain

// ContentType tags the kind of content record a translation belongs to. This
// is the workflow-level enumeration (what the record is), unrelated to the
// provider-level text format (how the text is encoded).
type ContentType string

const (
	ContentTypeProduct    ContentType = "product"
	ContentTypeArticle    ContentType = "article"
	ContentTypePage       ContentType = "page"
	ContentTypeJobPosting ContentType = "job_posting"
	ContentTypeCategory   ContentType = "category"
)

// ContentTypes lists the recognized record kinds in canonical order.
var ContentTypes = []ContentType{
	ContentTypeProduct,
	ContentTypeArticle,
	ContentTypePage,
	ContentTypeJobPosting,
	ContentTypeCategory,
}

// IsValidContentType reports whether value is a recognized record kind.
func IsValidContentType(value ContentType) bool {
	for _, ct := range ContentTypes {
		if ct == value {
			return true
		}
	}
	return false
}
