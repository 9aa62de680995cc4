package seeds

import (
	"time"

	"gorm.io/datatypes"

	taskModel "shuleni_backend/internals/features/assessment/tasks/model"
	invoiceModel "shuleni_backend/internals/features/finance/invoices/model"
	classroomModel "shuleni_backend/internals/features/school/classrooms/model"
	schoolModel "shuleni_backend/internals/features/school/schools/model"
	staffModel "shuleni_backend/internals/features/school/staff/model"
)

// Demo fixtures for a fresh tenant. Kept small but covering every entity the
// dashboard counts.

func demoSchool() schoolModel.SchoolModel {
	return schoolModel.SchoolModel{
		SchoolName:     "Shuleni Demo Academy",
		SchoolCode:     "DEMO-001",
		SchoolCounty:   strPtr("Nairobi"),
		SchoolIsActive: true,
	}
}

type demoLearner struct {
	First     string
	Last      string
	Gender    string
	Admission string
	UPI       string
	Guardian  string
	Phone     string
}

var demoLearners = []demoLearner{
	{"Grace", "Wanjiku", "female", "ADM-001", "UPI-44821", "Mary Wanjiku", "0712345678"},
	{"Brian", "Otieno", "male", "ADM-002", "UPI-44822", "Peter Otieno", "0722000111"},
	{"Amina", "Hassan", "female", "ADM-003", "UPI-44823", "Fatuma Hassan", "0733000222"},
	{"Kevin", "Mutua", "male", "ADM-004", "", "Jane Mutua", "0745000333"},
}

var demoStaff = []staffModel.StaffModel{
	{StaffName: "Samuel Kiprotich", StaffNo: "STF-001", StaffRole: "teacher", StaffIsActive: true},
	{StaffName: "Esther Njeri", StaffNo: "STF-002", StaffRole: "accountant", StaffIsActive: true},
}

var demoClassrooms = []classroomModel.ClassroomModel{
	{ClassroomGrade: "Grade 4", ClassroomStream: "North", ClassroomCapacity: 40},
	{ClassroomGrade: "Grade 5", ClassroomStream: "East", ClassroomCapacity: 40},
}

func demoTasks() []taskModel.SBATaskModel {
	due := time.Now().AddDate(0, 0, 14)
	return []taskModel.SBATaskModel{
		{
			SBATaskTitle:         "Plant growth observation journal",
			SBATaskSubject:       "Science and Technology",
			SBATaskGrade:         "Grade 4",
			SBATaskTerm:          2,
			SBATaskEvidenceTypes: []string{"photo", "observation"},
			SBATaskDueDate:       &due,
			SBATaskRubric:        datatypes.JSON([]byte(`{"emerging":"Names plant parts","approaching":"Records growth weekly","proficient":"Explains growth factors","exceeding":"Designs a controlled comparison"}`)),
		},
		{
			SBATaskTitle:         "Shairi recitation",
			SBATaskSubject:       "Kiswahili",
			SBATaskGrade:         "Grade 5",
			SBATaskTerm:          2,
			SBATaskEvidenceTypes: []string{"audio", "observation"},
		},
	}
}

func demoInvoiceItems() []invoiceModel.LineItem {
	return []invoiceModel.LineItem{
		{Description: "Tuition", Amount: 15000},
		{Description: "Transport", Amount: 4000},
		{Description: "Lunch programme", Amount: 1500},
	}
}

func strPtr(s string) *string { return &s }
