package util

// Collection names.
const (
	PatientCollection        = "patients"
	PatientHistoryCollection = "patienthistories"
	DoctorCollection         = "hospitaldoctors"
	InvestigationCollection  = "investigations"
	LabReportCollection      = "labreports"
	AppointmentCollection    = "patientappointments"
	MedicineCollection       = "doctormedicines"
)

// Cache key prefixes.
const (
	PatientKey  = "PATIENT_"
	HistoryKey  = "HISTORY_"
	OutbreakKey = "ANALYTICS_OUTBREAK"
)

// User types injected by the auth middleware.
const (
	DoctorUserType = "doctor"
)

// Error messages.
const (
	PATIENT_NOT_FOUND            = "Patient not found"
	DOCTOR_NOT_FOUND             = "Doctor not found"
	ADMISSION_NOT_FOUND          = "Admission record not found"
	APPOINTMENT_NOT_FOUND        = "Appointment not found"
	PATIENT_RECORD_NOT_FOUND     = "Patient record not found"
	PATIENT_ALREADY_ADMITTED     = "Patient already has an active admission"
	ALREADY_ADMITTED_FOR_ID      = "This patient has already been admitted for this admission ID"
	NOT_AUTHORIZED_FOR_ADMISSION = "You are not authorized to act on this admission"
	ONLY_DOCTORS_CAN_ACCESS      = "Access denied. Only doctors can access this route"
	INVALID_CONDITION            = "Invalid conditionAtDischarge value"
	INVALID_AMOUNT               = "Valid amountToBePayed is required"
	INVALID_APPOINTMENT_STATUS   = "Valid status is required"
	RESCHEDULE_FIELDS_REQUIRED   = "Rescheduled date and time are required"
	LAB_TEST_ALREADY_ASSIGNED    = "Lab test already assigned for this admission"
	INVALID_TREATMENT_TYPE       = "Invalid treatment type"
	INVALID_CREDENTIALS          = "Invalid email or password"
	ADMISSION_MODIFIED           = "Admission record was modified concurrently, please retry"
	EMAIL_PASSWORD_REQUIRED      = "Email and password are required"
	INVALID_TOKEN_SUBJECT        = "Invalid token subject"
	INVALID_OBJECT_ID            = "Invalid id format"
	INVALID_DATE_FORMAT          = "Invalid date format, expected YYYY-MM-DD"
	MISSING_REQUIRED_FIELDS      = "Missing required fields"
	INVALID_MEDICINE_CATEGORY    = "Invalid medicine category"
	MEDICINE_NOT_FOUND           = "Medicine not found or not added by you"
	INVESTIGATION_NOT_FOUND      = "Investigation not found"
	LAB_REPORT_NOT_FOUND         = "No lab reports found for this admission"
)
