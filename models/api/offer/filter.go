package offerapimodels

// OfferFilter parámetros de /listado tal como llegan en la query.
type OfferFilter struct {
	Search    string `query:"buscar"`
	Education string `query:"formacion"`
	Skills    string `query:"conocimientos"`
	ExpMin    string `query:"exp_min"`
	ExpMax    string `query:"exp_max"`
	PayMin    string `query:"salario_min"`
	PayMax    string `query:"salario_max"`
}

// IsAdvanced true si se indicó al menos un filtro avanzado.
func (f OfferFilter) IsAdvanced() bool {
	return f.Education != "" || f.Skills != "" ||
		f.ExpMin != "" || f.ExpMax != "" ||
		f.PayMin != "" || f.PayMax != ""
}

// Parse convierte la query en filtros tipados. Los números inválidos se ignoran;
// un mínimo mayor que el máximo es un error.
func (f OfferFilter) Parse() (AdvancedFilter, error) {
	result := AdvancedFilter{
		Education: f.Education,
		Skills:    SplitList(f.Skills),
		ExpMin:    ParseIntOrNil(f.ExpMin),
		ExpMax:    ParseIntOrNil(f.ExpMax),
		PayMin:    ParseIntOrNil(f.PayMin),
		PayMax:    ParseIntOrNil(f.PayMax),
	}
	if err := result.Validate(); err != nil {
		return AdvancedFilter{}, err
	}
	return result, nil
}

// AdvancedFilter filtros de búsqueda avanzada; todos opcionales y combinados con AND.
type AdvancedFilter struct {
	Education string   // subcadena en la formación
	Skills    []string // alguno de los conocimientos
	ExpMin    *int
	ExpMax    *int
	PayMin    *int
	PayMax    *int
}

func (f AdvancedFilter) Validate() error {
	if f.ExpMin != nil && f.ExpMax != nil && *f.ExpMin > *f.ExpMax {
		return &ValidationError{Message: "la experiencia mínima no puede ser mayor que la máxima"}
	}
	if f.PayMin != nil && f.PayMax != nil && *f.PayMin > *f.PayMax {
		return &ValidationError{Message: "el salario mínimo no puede ser mayor que el máximo"}
	}
	return nil
}

func (f AdvancedFilter) IsEmpty() bool {
	return f.Education == "" && len(f.Skills) == 0 &&
		f.ExpMin == nil && f.ExpMax == nil &&
		f.PayMin == nil && f.PayMax == nil
}
