package teamname

// BrazilianClubs lists canonical display names for Série A/B clubs with the
// spellings seen across TheOddsAPI, API-Football and the Loteca sheets.
var BrazilianClubs = []Entry{
	{Canonical: "Athletico Paranaense", Variants: []string{"Athletico-PR", "Atletico-PR", "Athletico PR", "Atletico Paranaense", "Athletico/PR"}},
	{Canonical: "Atlético Goianiense", Variants: []string{"Atletico-GO", "Atlético-GO", "Atletico GO", "Atletico Goianiense", "Atletico-Goianiense"}},
	{Canonical: "Atlético Mineiro", Variants: []string{"Atletico-MG", "Atlético-MG", "Atletico MG", "Atletico Mineiro", "Atletico-Mineiro"}},
	{Canonical: "América Mineiro", Variants: []string{"America-MG", "América-MG", "America MG", "America Mineiro", "America-Mineiro"}},
	{Canonical: "Avai", Variants: []string{"Avaí", "Avai FC", "Avai-SC", "Avaí-SC"}},
	{Canonical: "Botafogo-SP", Variants: []string{"Botafogo SP", "Botafogo/SP", "Botafogo Ribeirão Preto", "Botafogo Ribeirao", "Botafogo de Ribeirão Preto"}},
	{Canonical: "Chapecoense", Variants: []string{"Chapecoense-SC", "Chapeco", "Associação Chapecoense de Futebol"}},
	{Canonical: "CRB", Variants: []string{"CRB-AL", "CRB AL", "Clube de Regatas Brasil"}},
	{Canonical: "Cuiabá", Variants: []string{"Cuiaba", "Cuiabá EC", "Cuiaba-MT"}},
	{Canonical: "Ferroviária", Variants: []string{"Ferroviaria", "A. Ferroviária", "Ferroviária-SP", "Ferroviaria SP"}},
	{Canonical: "Novorizontino", Variants: []string{"Grêmio Novorizontino", "Gremio Novorizontino"}},
	{Canonical: "Operário-PR", Variants: []string{"Operario-PR", "Operario PR", "Operário", "Operario", "Operário Ferroviário"}},
	{Canonical: "Paysandu", Variants: []string{"Paysandu SC", "Paysandu (PA)", "Paysandu-PA", "Paysandu PA"}},
	{Canonical: "Remo", Variants: []string{"Remo (PA)", "Remo-PA", "Clube do Remo"}},
	{Canonical: "Sport Recife", Variants: []string{"Sport", "Sport Club do Recife", "Sport-PE"}},
	{Canonical: "Athletic Club", Variants: []string{"Athletic Club (MG)", "Athletic-MG"}},
	{Canonical: "Vila Nova", Variants: []string{"Vila Nova-GO", "Vila Nova FC"}},
	{Canonical: "Volta Redonda", Variants: []string{"Volta Redonda-RJ", "Volta Redonda RJ", "Volta Redonda FC"}},
	{Canonical: "São Paulo", Variants: []string{"Sao Paulo", "São Paulo FC", "Sao Paulo-SP"}},
	{Canonical: "Grêmio", Variants: []string{"Gremio", "Grêmio FBPA", "Gremio-RS"}},
	{Canonical: "Vasco da Gama", Variants: []string{"Vasco", "CR Vasco da Gama", "Vasco-RJ"}},
}

// NationalTeams maps Portuguese national-team names to the English names the
// odds providers publish.
var NationalTeams = []Entry{
	{Canonical: "Slovakia", Variants: []string{"Eslováquia"}},
	{Canonical: "Luxembourg", Variants: []string{"Luxemburgo"}},
	{Canonical: "Slovenia", Variants: []string{"Eslovênia"}},
	{Canonical: "Switzerland", Variants: []string{"Suíça", "Suica"}},
	{Canonical: "Northern Ireland", Variants: []string{"Irlanda do Norte"}},
	{Canonical: "Germany", Variants: []string{"Alemanha"}},
	{Canonical: "Iceland", Variants: []string{"Islândia"}},
	{Canonical: "France", Variants: []string{"França"}},
	{Canonical: "Wales", Variants: []string{"País de Gales"}},
	{Canonical: "Belgium", Variants: []string{"Bélgica"}},
	{Canonical: "Sweden", Variants: []string{"Suécia"}},
	{Canonical: "North Macedonia", Variants: []string{"Macedônia do Norte"}},
	{Canonical: "Kazakhstan", Variants: []string{"Cazaquistão"}},
	{Canonical: "Ukraine", Variants: []string{"Ucrânia"}},
	{Canonical: "Azerbaijan", Variants: []string{"Azerbaijão"}},
}

// DefaultEntries is the built-in alias data used when no file is configured.
func DefaultEntries() []Entry {
	out := make([]Entry, 0, len(BrazilianClubs)+len(NationalTeams))
	out = append(out, BrazilianClubs...)
	out = append(out, NationalTeams...)
	return out
}
