package models

type ReqUrgency string

const (
	ReqUrgencyUrgent    ReqUrgency = "срочный"
	ReqUrgencyNonUrgent ReqUrgency = "несрочный"
)

type OvertimeRateType string

const (
	OvertimeRateWorkday OvertimeRateType = "WORKDAY"
	OvertimeRateWeekend OvertimeRateType = "WEEKEND"
	OvertimeRateHoliday OvertimeRateType = "HOLIDAY"
)

var overtimeRateMultiplier = map[OvertimeRateType]float64{
	OvertimeRateWorkday: 1.5,
	OvertimeRateWeekend: 2,
	OvertimeRateHoliday: 2,
}

func (r OvertimeRateType) Multiplier() float64 {
	if m, exist := overtimeRateMultiplier[r]; exist {
		return m
	}
	return 1
}

func (r OvertimeRateType) IsValid() bool {
	_, exist := overtimeRateMultiplier[r]
	return exist
}

type EvalMilestone string

const (
	EvalMilestoneInterim EvalMilestone = "INTERIM"
	EvalMilestoneFinal   EvalMilestone = "FINAL"
)

type EvalRecommendation string

const (
	EvalRecommendRegularize EvalRecommendation = "REGULARIZE"
	EvalRecommendExtend     EvalRecommendation = "EXTEND"
	EvalRecommendTerminate  EvalRecommendation = "TERMINATE"
)

var evalRecommendationHumanName = map[EvalRecommendation]string{
	EvalRecommendRegularize: "Перевести в штат",
	EvalRecommendExtend:     "Продлить испытательный срок",
	EvalRecommendTerminate:  "Расторгнуть договор",
}

func (r EvalRecommendation) ToHuman() string {
	if human, exist := evalRecommendationHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r EvalRecommendation) IsValid() bool {
	_, exist := evalRecommendationHumanName[r]
	return exist
}

type EmploymentStatus string

const (
	EmploymentProbation EmploymentStatus = "PROBATION"
	EmploymentPermanent EmploymentStatus = "PERMANENT"
)

var employmentStatusHumanName = map[EmploymentStatus]string{
	EmploymentProbation: "Испытательный срок",
	EmploymentPermanent: "В штате",
}

func (s EmploymentStatus) ToHuman() string {
	if human, exist := employmentStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}
