package models

// LocationInfo is the geographic portion of a hosting lookup.
type LocationInfo struct {
	Country   string  `json:"country"`
	Region    string  `json:"region"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DNSRecordInfo is one entry of the DNS record enrichment.
type DNSRecordInfo struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	TTL   uint32 `json:"ttl,omitempty"`
}

// HostingResponse is the IP/domain geolocation contract.
type HostingResponse struct {
	Domain       string          `json:"domain"`
	IPAddress    string          `json:"ipAddress"`
	IPVersion    string          `json:"ipVersion"`
	Location     LocationInfo    `json:"location"`
	ISP          string          `json:"isp"`
	Organization string          `json:"organization"`
	ASN          string          `json:"asn"`
	Timezone     string          `json:"timezone"`
	ServerType   string          `json:"serverType"`
	DNSRecords   []DNSRecordInfo `json:"dnsRecords"`
	Note         string          `json:"note,omitempty"`
}
