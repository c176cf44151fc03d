package offerapimodels

type Statistics struct {
	TotalOffers     int               `json:"totalOfertas"`
	AveragePay      int               `json:"salarioPromedio"`
	UniqueCompanies int               `json:"empresasUnicas"`
	ByExperience    []ExperienceCount `json:"porExperiencia,omitempty"`
}

type ExperienceCount struct {
	Years int `json:"experiencia"`
	Count int `json:"cantidad"`
}
