package domain

// Quote is a single shipping service offer returned by the rate oracle.
type Quote struct {
	Courier     string `json:"courier"`
	CourierName string `json:"courier_name,omitempty"`
	Service     string `json:"service"`
	Description string `json:"description,omitempty"`
	Cost        int64  `json:"cost"`
	ETD         string `json:"etd"`
}

// Courier identifies a supported shipping carrier.
type Courier struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Couriers returns the carriers supported by the rate oracle, in display order.
func Couriers() []Courier {
	return []Courier{
		{Code: "jnt", Name: "J&T Express"},
		{Code: "jne", Name: "JNE"},
		{Code: "pos", Name: "POS Indonesia"},
		{Code: "tiki", Name: "TIKI"},
		{Code: "sicepat", Name: "SiCepat Express"},
		{Code: "wahana", Name: "Wahana Prestasi Logistik"},
	}
}

// IsSupportedCourier reports whether the code belongs to a supported carrier.
func IsSupportedCourier(code string) bool {
	for _, c := range Couriers() {
		if c.Code == code {
			return true
		}
	}
	return false
}
