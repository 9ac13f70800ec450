package navigation

// CompanyRef is the slim company projection the tree carries; the full
// record stays behind the company endpoints.
type CompanyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type TreeCompanies struct {
	Masonry   *CompanyRef `json:"masonry"`
	Architect *CompanyRef `json:"architect"`
	Engineer  *CompanyRef `json:"engineer"`
	Client    *CompanyRef `json:"client"`
}

type TreeOrder struct {
	ID          string `json:"id"`
	DraftName   string `json:"draft_name"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

type TreeProject struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Number    string        `json:"number"`
	Status    string        `json:"status"`
	Companies TreeCompanies `json:"companies"`
	Orders    []TreeOrder   `json:"orders"`
}

type TreeResponse struct {
	Projects []TreeProject `json:"projects"`
}
