package i18n

// Key is a symbolic text key. Every key must resolve in every supported language;
// Catalog.Validate enforces that at startup.
type Key int

const (
	KeyEmergencyBanner Key = iota
	KeyAppTitle
	KeyAppSubtitle
	KeyBtnGetStarted
	KeySelectLanguageTitle
	KeySelectLanguageSubtitle
	KeyEnterDetailsTitle
	KeyLabelFullName
	KeyPlaceholderName
	KeyLabelPhone
	KeyPlaceholderPhone
	KeyBtnContinue
	KeyDashboardTitle
	KeyHelloPatient
	KeyRegularCheckupTitle
	KeyRegularCheckupDesc
	KeyPostOpTitle
	KeyPostOpDesc
	KeyBtnCallCare
	KeyBasicCheckupTitle
	KeyBasicCheckupDesc
	KeySpecialTreatmentTitle
	KeySpecialTreatmentDesc
	KeyVitalBP
	KeyPlaceholderBPSys
	KeyPlaceholderBPDia
	KeyVitalSugar
	KeyPlaceholderSugar
	KeyVitalBMI
	KeyPlaceholderBMI
	KeyVitalTemp
	KeyPlaceholderTemp
	KeyBtnAnalyze
	KeyBtnBookDoc
	KeyLabelDoctor
	KeyLabelDate
	KeyLabelTime
	KeyBtnConfirmApt
	KeyPostOpSetupTitle
	KeyLabelSurgeryType
	KeyPlaceholderSurgery
	KeyBtnStartAI
	KeyAIAssistantTitle
	KeyAIWelcomeMsg
	KeyPlaceholderChat
	KeyAlertFillFields
	KeyAlertOneVital
	KeyAlertServerErr
	KeyAlertDateTime
	KeyAlertAptSuccess
	KeyMsgTyping
	KeyErrSpeech
	KeyErrSpeechUnsupported
	KeyErrPhoneMissing
	KeyMsgCallInit
	KeyMsgCallSuccess
	KeySeverityLabel
	KeyConfirmAptMsg
	KeyMsgCallQueued
	KeySpeakLanguageSet
	KeySpeakEmergency
	KeyBtnYes
	KeyBtnNo

	keyCount
)

var keyNames = [keyCount]string{
	KeyEmergencyBanner:        "emergency_banner",
	KeyAppTitle:               "app_title",
	KeyAppSubtitle:            "app_subtitle",
	KeyBtnGetStarted:          "btn_get_started",
	KeySelectLanguageTitle:    "select_language_title",
	KeySelectLanguageSubtitle: "select_language_subtitle",
	KeyEnterDetailsTitle:      "enter_details_title",
	KeyLabelFullName:          "label_full_name",
	KeyPlaceholderName:        "placeholder_name",
	KeyLabelPhone:             "label_phone",
	KeyPlaceholderPhone:       "placeholder_phone",
	KeyBtnContinue:            "btn_continue",
	KeyDashboardTitle:         "dashboard_title",
	KeyHelloPatient:           "hello_patient",
	KeyRegularCheckupTitle:    "regular_checkup_title",
	KeyRegularCheckupDesc:     "regular_checkup_desc",
	KeyPostOpTitle:            "postop_title",
	KeyPostOpDesc:             "postop_desc",
	KeyBtnCallCare:            "btn_call_care",
	KeyBasicCheckupTitle:      "basic_checkup_title",
	KeyBasicCheckupDesc:       "basic_checkup_desc",
	KeySpecialTreatmentTitle:  "special_treatment_title",
	KeySpecialTreatmentDesc:   "special_treatment_desc",
	KeyVitalBP:                "vital_bp",
	KeyPlaceholderBPSys:       "placeholder_bp_sys",
	KeyPlaceholderBPDia:       "placeholder_bp_dia",
	KeyVitalSugar:             "vital_sugar",
	KeyPlaceholderSugar:       "placeholder_sugar",
	KeyVitalBMI:               "vital_bmi",
	KeyPlaceholderBMI:         "placeholder_bmi",
	KeyVitalTemp:              "vital_temp",
	KeyPlaceholderTemp:        "placeholder_temp",
	KeyBtnAnalyze:             "btn_analyze",
	KeyBtnBookDoc:             "btn_book_doc",
	KeyLabelDoctor:            "label_doctor",
	KeyLabelDate:              "label_date",
	KeyLabelTime:              "label_time",
	KeyBtnConfirmApt:          "btn_confirm_apt",
	KeyPostOpSetupTitle:       "postop_setup_title",
	KeyLabelSurgeryType:       "label_surgery_type",
	KeyPlaceholderSurgery:     "placeholder_surgery",
	KeyBtnStartAI:             "btn_start_ai",
	KeyAIAssistantTitle:       "ai_assistant_title",
	KeyAIWelcomeMsg:           "ai_welcome_msg",
	KeyPlaceholderChat:        "placeholder_chat",
	KeyAlertFillFields:        "alert_fill_fields",
	KeyAlertOneVital:          "alert_one_vital",
	KeyAlertServerErr:         "alert_server_err",
	KeyAlertDateTime:          "alert_datetime",
	KeyAlertAptSuccess:        "alert_apt_success",
	KeyMsgTyping:              "msg_typing",
	KeyErrSpeech:              "err_speech",
	KeyErrSpeechUnsupported:   "err_speech_unsupported",
	KeyErrPhoneMissing:        "err_phone_missing",
	KeyMsgCallInit:            "msg_call_init",
	KeyMsgCallSuccess:         "msg_call_success",
	KeySeverityLabel:          "severity_label",
	KeyConfirmAptMsg:          "confirm_apt_msg",
	KeyMsgCallQueued:          "msg_call_queued",
	KeySpeakLanguageSet:       "speak_language_set",
	KeySpeakEmergency:         "speak_emergency",
	KeyBtnYes:                 "btn_yes",
	KeyBtnNo:                  "btn_no",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, keyCount)
	for k, name := range keyNames {
		m[name] = Key(k)
	}
	return m
}()

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown_key"
	}
	return keyNames[k]
}

// ParseKey maps a catalog name back to its Key.
func ParseKey(name string) (Key, bool) {
	k, ok := keysByName[name]
	return k, ok
}

// AllKeys lists every key in declaration order.
func AllKeys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}
