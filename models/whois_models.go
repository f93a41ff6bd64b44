package models

import "time"

// WhoisResponse is the domain WHOIS contract. The shape is identical no
// matter which provider answered; Note is set only on degraded results
// synthesized from DNS evidence.
type WhoisResponse struct {
	Domain                 string    `json:"domain"`
	RegistrationDate       string    `json:"registrationDate"`
	ExpirationDate         string    `json:"expirationDate"`
	UpdatedDate            string    `json:"updatedDate,omitempty"`
	Registrar              string    `json:"registrar"`
	Status                 []string  `json:"status"`
	NameServers            []string  `json:"nameServers"`
	LastUpdated            time.Time `json:"lastUpdated"`
	WhoisServer            string    `json:"whoisServer"`
	RegistrantOrganization string    `json:"registrantOrganization"`
	RegistrantCountry      string    `json:"registrantCountry"`
	AdminEmail             string    `json:"adminEmail"`
	TechEmail              string    `json:"techEmail"`
	Note                   string    `json:"note,omitempty"`
}
