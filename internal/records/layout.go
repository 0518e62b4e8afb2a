package records

// KeyColumn holds each record's display name (column D).
const KeyColumn = 3

// 0-based column indices of the tracked fields on the Medical sheet.
const (
	ColumnWeight            = 12 // M
	ColumnHeight            = 13 // N
	ColumnBloodPressure     = 15 // P
	ColumnPulseRate         = 16 // Q
	ColumnOxygen            = 17 // R
	ColumnTemperature       = 18 // S
	ColumnBloodSugar        = 19 // T
	ColumnGP                = 20 // U
	ColumnAllergy           = 21 // V
	ColumnAlert             = 22 // W
	ColumnCondition         = 23 // X
	ColumnRemarks           = 24 // Y
	ColumnMedication        = 25 // Z
	ColumnReminderDateLocal = 26 // AA
	ColumnReminderDateUTC   = 27 // AB
	ColumnMessageText       = 28 // AC
)

// Field is one history-tracked attribute that has its own update endpoint.
type Field struct {
	// Slug names the endpoint: /api/update-<Slug>.
	Slug string
	// DataKey is the request body property carrying the new value.
	DataKey string
	// Label is used in response messages.
	Label  string
	Column int
}

// Fields is the field-to-column table shared by the HTTP layer and the store.
var Fields = []Field{
	{Slug: "weight", DataKey: "weightData", Label: "Weight", Column: ColumnWeight},
	{Slug: "height", DataKey: "heightData", Label: "Height", Column: ColumnHeight},
	{Slug: "blood-pressure", DataKey: "bloodPressureData", Label: "Blood Pressure", Column: ColumnBloodPressure},
	{Slug: "pulse-rate", DataKey: "pulseRateData", Label: "Pulse Rate", Column: ColumnPulseRate},
	{Slug: "oxygen", DataKey: "oxygenData", Label: "Oxygen", Column: ColumnOxygen},
	{Slug: "temperature", DataKey: "temperatureData", Label: "Temperature", Column: ColumnTemperature},
	{Slug: "blood-sugar", DataKey: "bloodSugarData", Label: "Blood Sugar", Column: ColumnBloodSugar},
	{Slug: "gp", DataKey: "gpData", Label: "GP", Column: ColumnGP},
	{Slug: "allergy", DataKey: "allergyData", Label: "Allergy", Column: ColumnAllergy},
	{Slug: "alert", DataKey: "alertData", Label: "Alert", Column: ColumnAlert},
	{Slug: "condition", DataKey: "conditionData", Label: "Condition", Column: ColumnCondition},
	{Slug: "remarks", DataKey: "remarksData", Label: "Remarks", Column: ColumnRemarks},
	{Slug: "medication", DataKey: "medicationData", Label: "Medication", Column: ColumnMedication},
	{Slug: "message-text", DataKey: "messageTextData", Label: "Message Text", Column: ColumnMessageText},
	{Slug: "time-to-remind", DataKey: "timeToRemindData", Label: "Time to Remind", Column: ColumnReminderDateUTC},
}

// DemographicWidth is the number of columns (A..L) a demographic record spans.
const DemographicWidth = 12

// Demographics is a patient's identifying data as entered on registration.
type Demographics struct {
	Surname     string `json:"surname"`
	Firstname   string `json:"firstname"`
	Middle      string `json:"middle"`
	Address     string `json:"address"`
	ContactNo   string `json:"contactNo"`
	Birthday    string `json:"birthday"`
	Gender      string `json:"gender"`
	Status      string `json:"status"`
	VisaStatus  string `json:"visaStatus"`
	LocaleGroup string `json:"localeGroup"`
}

// Fields lays d out over columns A..L. Column D (display name) and column G
// are always written empty; the sheet fills them itself.
func (d Demographics) Fields() []string {
	return []string{
		d.Surname,
		d.Firstname,
		d.Middle,
		"",
		d.LocaleGroup,
		d.Birthday,
		"",
		d.Gender,
		d.Status,
		d.VisaStatus,
		d.Address,
		d.ContactNo,
	}
}

// Demographic column positions, used by the identity check and search.
const (
	ColumnSurname   = 0
	ColumnFirstname = 1
	ColumnMiddle    = 2
	ColumnBirthday  = 5
)
