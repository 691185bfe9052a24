package models

type Role string
type ServiceType string
type Experience string
type TalentCategory string
type GeneralAvailability string
type AvailabilityStatus string
type BookingStatus string

const (
	RoleProvider Role = "provider"
	RoleTalent   Role = "talent"

	ServiceTypePainter     ServiceType = "painter"
	ServiceTypePlumber     ServiceType = "plumber"
	ServiceTypeElectrician ServiceType = "electrician"
	ServiceTypeCarpenter   ServiceType = "carpenter"
	ServiceTypeCleaner     ServiceType = "cleaner"
	ServiceTypeMechanic    ServiceType = "mechanic"
	ServiceTypeGardener    ServiceType = "gardener"
	ServiceTypeSecurity    ServiceType = "security"
	ServiceTypeCatering    ServiceType = "catering"
	ServiceTypePhotography ServiceType = "photography"
	ServiceTypeVideography ServiceType = "videography"
	ServiceTypeOther       ServiceType = "other"

	Experience0to1   Experience = "0-1"
	Experience1to3   Experience = "1-3"
	Experience3to5   Experience = "3-5"
	Experience5to10  Experience = "5-10"
	Experience10Plus Experience = "10+"

	CategoryArtisans      TalentCategory = "Artisans"
	CategoryCreatives     TalentCategory = "Creatives"
	CategorySkilledTrades TalentCategory = "Skilled Trades"
	CategoryStudents      TalentCategory = "Students"

	GeneralAvailabilityFlexible  GeneralAvailability = "flexible"
	GeneralAvailabilityBusiness  GeneralAvailability = "business"
	GeneralAvailabilityWeekends  GeneralAvailability = "weekends"
	GeneralAvailabilityEmergency GeneralAvailability = "emergency"

	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityBusy        AvailabilityStatus = "busy"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"

	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
)

var ServiceTypes = []ServiceType{
	ServiceTypePainter, ServiceTypePlumber, ServiceTypeElectrician, ServiceTypeCarpenter,
	ServiceTypeCleaner, ServiceTypeMechanic, ServiceTypeGardener, ServiceTypeSecurity,
	ServiceTypeCatering, ServiceTypePhotography, ServiceTypeVideography, ServiceTypeOther,
}

var Experiences = []Experience{
	Experience0to1, Experience1to3, Experience3to5, Experience5to10, Experience10Plus,
}

var TalentCategories = []TalentCategory{
	CategoryArtisans, CategoryCreatives, CategorySkilledTrades, CategoryStudents,
}

func (s ServiceType) IsValid() bool {
	for _, v := range ServiceTypes {
		if v == s {
			return true
		}
	}
	return false
}

func (e Experience) IsValid() bool {
	for _, v := range Experiences {
		if v == e {
			return true
		}
	}
	return false
}

func (c TalentCategory) IsValid() bool {
	for _, v := range TalentCategories {
		if v == c {
			return true
		}
	}
	return false
}
