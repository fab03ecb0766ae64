package ree

// rawEntry is one PVPC row as the REE API ships it: Dia is DD/MM/YYYY,
// Hora is an hour range like "14-15" and PCB is the price in EUR/MWh
// with a comma decimal separator.
type rawEntry struct {
	Dia  string `json:"Dia"`
	Hora string `json:"Hora"`
	PCB  string `json:"PCB"`
}

type rawResponse struct {
	PVPC []rawEntry `json:"PVPC"`
}
