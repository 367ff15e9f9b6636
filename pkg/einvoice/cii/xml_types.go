package cii

import "encoding/xml"

type xmlCrossIndustryInvoice struct {
	XMLName xml.Name `xml:"rsm:CrossIndustryInvoice"`
	Rsm     string   `xml:"xmlns:rsm,attr"`
	Ram     string   `xml:"xmlns:ram,attr"`
	Udt     string   `xml:"xmlns:udt,attr"`
	Qdt     string   `xml:"xmlns:qdt,attr"`

	Context     xmlExchangedDocumentContext `xml:"rsm:ExchangedDocumentContext"`
	Document    xmlExchangedDocument        `xml:"rsm:ExchangedDocument"`
	Transaction xmlTradeTransaction         `xml:"rsm:SupplyChainTradeTransaction"`
}

type xmlExchangedDocumentContext struct {
	GuidelineParameter xmlDocumentContextParameter `xml:"ram:GuidelineSpecifiedDocumentContextParameter"`
}

type xmlDocumentContextParameter struct {
	ID string `xml:"ram:ID"`
}

type xmlExchangedDocument struct {
	ID            string     `xml:"ram:ID"`
	TypeCode      string     `xml:"ram:TypeCode"`
	IssueDateTime xmlUdtDate `xml:"ram:IssueDateTime"`
	Notes         []xmlNote  `xml:"ram:IncludedNote,omitempty"`
}

type xmlNote struct {
	Content string `xml:"ram:Content"`
}

type xmlUdtDate struct {
	DateTimeString xmlDateTimeString `xml:"udt:DateTimeString"`
}

type xmlQdtDate struct {
	DateTimeString xmlDateTimeString `xml:"qdt:DateTimeString"`
}

type xmlDateTimeString struct {
	Value  string `xml:",chardata"`
	Format string `xml:"format,attr"`
}

type xmlTradeTransaction struct {
	LineItems  []xmlLineItem      `xml:"ram:IncludedSupplyChainTradeLineItem"`
	Agreement  xmlTradeAgreement  `xml:"ram:ApplicableHeaderTradeAgreement"`
	Delivery   xmlTradeDelivery   `xml:"ram:ApplicableHeaderTradeDelivery"`
	Settlement xmlTradeSettlement `xml:"ram:ApplicableHeaderTradeSettlement"`
}

type xmlLineItem struct {
	LineDocument xmlLineDocument   `xml:"ram:AssociatedDocumentLineDocument"`
	Product      xmlTradeProduct   `xml:"ram:SpecifiedTradeProduct"`
	Agreement    xmlLineAgreement  `xml:"ram:SpecifiedLineTradeAgreement"`
	Delivery     xmlLineDelivery   `xml:"ram:SpecifiedLineTradeDelivery"`
	Settlement   xmlLineSettlement `xml:"ram:SpecifiedLineTradeSettlement"`
}

type xmlLineDocument struct {
	LineID string `xml:"ram:LineID"`
}

type xmlTradeProduct struct {
	Name        string `xml:"ram:Name"`
	Description string `xml:"ram:Description,omitempty"`
}

type xmlLineAgreement struct {
	NetPrice xmlTradePrice `xml:"ram:NetPriceProductTradePrice"`
}

type xmlTradePrice struct {
	ChargeAmount string `xml:"ram:ChargeAmount"`
}

type xmlLineDelivery struct {
	BilledQuantity xmlQuantity `xml:"ram:BilledQuantity"`
}

type xmlQuantity struct {
	Value    string `xml:",chardata"`
	UnitCode string `xml:"unitCode,attr"`
}

type xmlLineSettlement struct {
	TradeTax  xmlTradeTax            `xml:"ram:ApplicableTradeTax"`
	Summation xmlLineMonetarySummary `xml:"ram:SpecifiedTradeSettlementLineMonetarySummation"`
}

type xmlTradeTax struct {
	CalculatedAmount      string `xml:"ram:CalculatedAmount,omitempty"`
	TypeCode              string `xml:"ram:TypeCode"`
	ExemptionReason       string `xml:"ram:ExemptionReason,omitempty"`
	BasisAmount           string `xml:"ram:BasisAmount,omitempty"`
	CategoryCode          string `xml:"ram:CategoryCode"`
	RateApplicablePercent string `xml:"ram:RateApplicablePercent"`
}

type xmlLineMonetarySummary struct {
	LineTotalAmount string `xml:"ram:LineTotalAmount"`
}

type xmlTradeAgreement struct {
	Seller xmlTradeParty `xml:"ram:SellerTradeParty"`
	Buyer  xmlTradeParty `xml:"ram:BuyerTradeParty"`
}

type xmlTradeParty struct {
	Name            string              `xml:"ram:Name"`
	PostalAddress   xmlPostalAddress    `xml:"ram:PostalTradeAddress"`
	TaxRegistration *xmlTaxRegistration `xml:"ram:SpecifiedTaxRegistration,omitempty"`
}

type xmlPostalAddress struct {
	PostcodeCode string `xml:"ram:PostcodeCode,omitempty"`
	LineOne      string `xml:"ram:LineOne"`
	CityName     string `xml:"ram:CityName"`
	CountryID    string `xml:"ram:CountryID"`
}

type xmlTaxRegistration struct {
	ID xmlSchemedID `xml:"ram:ID"`
}

type xmlSchemedID struct {
	Value    string `xml:",chardata"`
	SchemeID string `xml:"schemeID,attr"`
}

type xmlTradeDelivery struct {
	DeliveryEvent *xmlDeliveryEvent `xml:"ram:ActualDeliverySupplyChainEvent,omitempty"`
}

type xmlDeliveryEvent struct {
	OccurrenceDateTime xmlUdtDate `xml:"ram:OccurrenceDateTime"`
}

type xmlTradeSettlement struct {
	PaymentReference  string                   `xml:"ram:PaymentReference"`
	InvoiceCurrency   string                   `xml:"ram:InvoiceCurrencyCode"`
	PaymentMeans      *xmlPaymentMeans         `xml:"ram:SpecifiedTradeSettlementPaymentMeans,omitempty"`
	TradeTax          xmlTradeTax              `xml:"ram:ApplicableTradeTax"`
	BillingPeriod     *xmlBillingPeriod        `xml:"ram:BillingSpecifiedPeriod,omitempty"`
	PaymentTerms      *xmlPaymentTerms         `xml:"ram:SpecifiedTradePaymentTerms,omitempty"`
	ReferencedInvoice xmlInvoiceReferencedDoc  `xml:"ram:InvoiceReferencedDocument"`
	AccountingAccount xmlAccountingAccount     `xml:"ram:ReceivableSpecifiedTradeAccountingAccount"`
	Summation         xmlHeaderMonetarySummary `xml:"ram:SpecifiedTradeSettlementHeaderMonetarySummation"`
}

type xmlBillingPeriod struct {
	StartDateTime xmlUdtDate `xml:"ram:StartDateTime"`
	EndDateTime   xmlUdtDate `xml:"ram:EndDateTime"`
}

type xmlPaymentMeans struct {
	TypeCode         string                  `xml:"ram:TypeCode"`
	PayeeAccount     xmlCreditorAccount      `xml:"ram:PayeePartyCreditorFinancialAccount"`
	PayeeInstitution *xmlCreditorInstitution `xml:"ram:PayeeSpecifiedCreditorFinancialInstitution,omitempty"`
}

type xmlCreditorAccount struct {
	IBANID string `xml:"ram:IBANID"`
}

type xmlCreditorInstitution struct {
	BICID string `xml:"ram:BICID"`
}

type xmlPaymentTerms struct {
	Description     string      `xml:"ram:Description,omitempty"`
	DueDateDateTime *xmlUdtDate `xml:"ram:DueDateDateTime,omitempty"`
}

type xmlInvoiceReferencedDoc struct {
	IssuerAssignedID       string     `xml:"ram:IssuerAssignedID"`
	FormattedIssueDateTime xmlQdtDate `xml:"ram:FormattedIssueDateTime"`
}

type xmlAccountingAccount struct {
	ID string `xml:"ram:ID"`
}

type xmlHeaderMonetarySummary struct {
	LineTotalAmount     string      `xml:"ram:LineTotalAmount"`
	TaxBasisTotalAmount string      `xml:"ram:TaxBasisTotalAmount"`
	TaxTotalAmount      xmlCurrency `xml:"ram:TaxTotalAmount"`
	GrandTotalAmount    string      `xml:"ram:GrandTotalAmount"`
	DuePayableAmount    string      `xml:"ram:DuePayableAmount"`
}

type xmlCurrency struct {
	Value      string `xml:",chardata"`
	CurrencyID string `xml:"currencyID,attr"`
}
