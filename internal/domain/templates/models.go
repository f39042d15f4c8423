package templates

type Template struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	PerformanceFactor string   `json:"performanceFactor"`
	Importance        string   `json:"importance"`
	Weightage         int      `json:"weightage"`
	Categories        []string `json:"categories"`
}

type Header struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Templates []Template `json:"templates"`
}
