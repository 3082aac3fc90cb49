package company

// Slot names one of the seven document categories a company record can hold.
type Slot string

const (
	SlotIntendedCompanyName       Slot = "intendedCompanyName"
	SlotAlternativeCompanyName1   Slot = "alternativeCompanyName1"
	SlotAlternativeCompanyName2   Slot = "alternativeCompanyName2"
	SlotCompanyActivities         Slot = "companyActivities"
	SlotIntendedRegisteredAddress Slot = "intendedRegisteredAddress"
	SlotFinancialYearEnd          Slot = "financialYearEnd"
	SlotConstitution              Slot = "constitution"
)

// Descriptor binds a slot to its semantic field name and extraction prompt.
// Processing every slot through this table replaces the per-field branches
// that otherwise multiply across handlers.
type Descriptor struct {
	Slot   Slot
	Field  string
	Prompt string
}

// TextDescriptors covers the six slots whose value is a single summarized
// field. The constitution slot is handled separately because it also carries
// the option choice.
var TextDescriptors = []Descriptor{
	{Slot: SlotIntendedCompanyName, Field: "name", Prompt: promptName},
	{Slot: SlotAlternativeCompanyName1, Field: "name", Prompt: promptName},
	{Slot: SlotAlternativeCompanyName2, Field: "name", Prompt: promptName},
	{Slot: SlotCompanyActivities, Field: "description", Prompt: promptDescription},
	{Slot: SlotIntendedRegisteredAddress, Field: "address", Prompt: promptAddress},
	{Slot: SlotFinancialYearEnd, Field: "date", Prompt: promptDate},
}

// ConstitutionDescriptor describes the constitution slot's summarized field.
var ConstitutionDescriptor = Descriptor{
	Slot:   SlotConstitution,
	Field:  "description",
	Prompt: promptDescription,
}

// AllSlots lists every slot in submission order.
var AllSlots = []Slot{
	SlotIntendedCompanyName,
	SlotAlternativeCompanyName1,
	SlotAlternativeCompanyName2,
	SlotCompanyActivities,
	SlotIntendedRegisteredAddress,
	SlotFinancialYearEnd,
	SlotConstitution,
}

// ParseSlot maps a form field name to a known slot.
func ParseSlot(name string) (Slot, bool) {
	for _, s := range AllSlots {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// FieldFor returns the semantic field name for a slot.
func FieldFor(slot Slot) string {
	if slot == SlotConstitution {
		return ConstitutionDescriptor.Field
	}
	for _, d := range TextDescriptors {
		if d.Slot == slot {
			return d.Field
		}
	}
	return ""
}
