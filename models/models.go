package models

// Theme is one of the ten fixed UI palettes a patient can pick.
type Theme string

const (
	ThemeBlue   Theme = "blue"
	ThemeGreen  Theme = "green"
	ThemeRed    Theme = "red"
	ThemePurple Theme = "purple"
	ThemeTeal   Theme = "teal"
	ThemeOrange Theme = "orange"
	ThemeIndigo Theme = "indigo"
	ThemeRose   Theme = "rose"
	ThemeAmber  Theme = "amber"
	ThemeCyan   Theme = "cyan"
)

// ValidTheme reports whether t is one of the fixed palette values.
func ValidTheme(t Theme) bool {
	switch t {
	case ThemeBlue, ThemeGreen, ThemeRed, ThemePurple, ThemeTeal,
		ThemeOrange, ThemeIndigo, ThemeRose, ThemeAmber, ThemeCyan:
		return true
	}
	return false
}

// User is a registered patient. The id is caller-supplied at registration and
// unique across the collection. Passwords are stored and compared as plain
// text; credential hardening is deliberately out of scope here.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Age        string `json:"age,omitempty"`
	Gender     string `json:"gender,omitempty"`
	BloodGroup string `json:"bloodGroup,omitempty"`
	Address    string `json:"address,omitempty"`
	Mobile     string `json:"mobile,omitempty"`
	Photo      string `json:"photo,omitempty"` // data-URI
	IsBlocked  bool   `json:"isBlocked"`
	Theme      Theme  `json:"theme"`
}

// Medicine is a price-list entry, admin-owned.
type Medicine struct {
	ID          string `json:"id"`
	BrandName   string `json:"brandName"`
	GenericName string `json:"genericName"`
	Company     string `json:"company"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
}

// OrderItem is one line of an order. Quantity and price stay strings to match
// the persisted schema; arithmetic parses them with non-numeric treated as 0.
type OrderItem struct {
	MedicineName string `json:"medicineName"`
	Quantity     string `json:"quantity"`
	PricePerUnit string `json:"pricePerUnit"`
}

// Order lifecycle states.
const (
	OrderPending   = "pending"
	OrderReplied   = "replied"
	OrderConfirmed = "confirmed" // declared in the schema; no in-scope transition reaches it
)

type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	UserName   string      `json:"userName"` // denormalized snapshot at submit time
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
	Address    string      `json:"address"`
	Phone      string      `json:"phone"`
	Note       string      `json:"note"`
	Status     string      `json:"status"`
	AdminReply string      `json:"adminReply,omitempty"`
	Timestamp  int64       `json:"timestamp"`
}

// Message is one chat message between a patient and the admin. Exactly one of
// SenderID/ReceiverID is the admin actor. Append-only.
type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}

// AppNotification is an inbox entry for an actor. The collection is kept
// newest-first; Read flips to true only in bulk via mark-all-read.
type AppNotification struct {
	ID        string `json:"id"`
	To        string `json:"to"` // admin actor or a user id
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
}

// PrescribedMedicine is one entry of an AI-generated prescription.
type PrescribedMedicine struct {
	NameEn  string `json:"nameEn"`
	NameBn  string `json:"nameBn"`
	Generic string `json:"generic"`
	Dosage  string `json:"dosage"`
	Purpose string `json:"purpose"`
}

// Prescription is the AI collaborator's structured result merged with the
// patient intake it was generated from.
type Prescription struct {
	ID          string               `json:"id"`
	UserID      string               `json:"userId"`
	Date        string               `json:"date"`
	PatientName string               `json:"patientName"`
	Age         string               `json:"age"`
	Gender      string               `json:"gender"`
	BP          string               `json:"bp,omitempty"`
	Diabetes    string               `json:"diabetes,omitempty"`
	Symptoms    []string             `json:"symptoms"`
	Diagnosis   string               `json:"diagnosis"`
	Medicines   []PrescribedMedicine `json:"medicines"`
	Advice      string               `json:"advice"`
	Precautions string               `json:"precautions,omitempty"`
}

type WelcomeBanner struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

type DoctorDetails struct {
	Name      string `json:"name"`
	Degree    string `json:"degree"`
	Specialty string `json:"specialty"`
	RegNo     string `json:"regNo"`
}

// AppConfig is the singleton branding record. Admin-mutated, read by all
// patient views.
type AppConfig struct {
	HomeHeader         string        `json:"homeHeader"`
	HomeFooter         string        `json:"homeFooter"`
	PrescriptionHeader string        `json:"prescriptionHeader"`
	PrescriptionFooter string        `json:"prescriptionFooter"`
	PrescriptionTheme  Theme         `json:"prescriptionTheme"`
	BannerImage        string        `json:"bannerImage"`
	WelcomeBanner      WelcomeBanner `json:"welcomeBanner"`
	DigitalSignature   string        `json:"digitalSignature"`
	DoctorDetails      DoctorDetails `json:"doctorDetails"`
}

// DefaultConfig returns the initial branding used until the admin edits it.
func DefaultConfig() AppConfig {
	return AppConfig{
		HomeHeader:         "আমার ডাক্তার ডিজিটাল স্বাস্থ্য সেবা",
		HomeFooter:         "সুস্থ থাকুন, ভালো থাকুন। আমাদের সাথেই থাকুন।",
		PrescriptionHeader: "Amar Doctor Digital Clinic",
		PrescriptionFooter: "জরুরী প্রয়োজনে নিকটস্থ হাসপাতালে যোগাযোগ করুন।",
		PrescriptionTheme:  ThemeBlue,
		BannerImage:        "https://picsum.photos/1200/400?medical=1",
		WelcomeBanner: WelcomeBanner{
			Title: "স্বাগতম আমাদের স্বাস্থ্য সেবায়!",
			Image: "https://picsum.photos/400/200?admin=1",
		},
		DoctorDetails: DoctorDetails{
			Name:      "ডাঃ মোঃ আব্দুর রহমান",
			Degree:    "MBBS, BCS (Health)",
			Specialty: "মেডিসিন বিশেষজ্ঞ",
			RegNo:     "BMDC-12345",
		},
	}
}
