package smaps

import (
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/services"
)

type TokenMap struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UserMap struct {
	User *models.User `json:"user"`
}

type CotypesMap struct {
	Cotypes []string `json:"cotypes"`
}

type IdInsertedMap struct {
	ID string `json:"_id"`
}

type ImportedMap struct {
	Imported int `json:"imported"`
}

type BatchesMap struct {
	Batches []models.Batch `json:"batches"`
}

type BatchMap struct {
	Batch *repositories.BatchDetail `json:"batch"`
}

type NamelistsMap struct {
	Namelists []models.Namelist `json:"namelists"`
}

type NamelistMap struct {
	Namelist *models.Namelist `json:"namelist"`
}

type SearchHitsMap struct {
	Hits []repositories.StudentHit `json:"hits"`
}

type SemestersMap struct {
	Semesters []models.Semester `json:"semesters"`
}

type SemesterMap struct {
	Semester *services.SemesterDetail `json:"semester"`
}

type CoListMap struct {
	Course *models.CoList `json:"course"`
}

type CoListsMap struct {
	Courses []models.CoList `json:"courses"`
}

type CoStudentMap struct {
	Student *models.CoStudent `json:"student"`
}

type PtListMap struct {
	Pt *models.PtList `json:"pt"`
}

type PtStudentMap struct {
	Student *models.PtStudent `json:"student"`
}

type SeeListMap struct {
	See *models.SeeList `json:"see"`
}

type SeeStudentMap struct {
	Student *models.SeeStudent `json:"student"`
}

type AttainmentMap struct {
	Students []services.Attainment `json:"students"`
}

type PublishedMap struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
