package domain

// CatalogQuery selects a remote listing. When Search is set the catalog runs a
// text search, otherwise Listing names a browse feed such as "popular".
type CatalogQuery struct {
	Kind    ContentKind
	Search  string
	Listing string
	Sort    string
}

type CatalogPage struct {
	Items     []Content
	NextToken string
}
