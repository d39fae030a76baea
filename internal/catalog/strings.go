package catalog

// StringKey identifies a localized template string.
type StringKey string

// String keys used by the prompt builder and the workflow engine.
const (
	KeyWelcome          StringKey = "welcome"
	KeyLanguagePrompt   StringKey = "language.prompt"
	KeyRequestPrompt    StringKey = "request.prompt"
	KeyServicesIntro    StringKey = "services.intro"
	KeyServicesTitle    StringKey = "services.title"
	KeyServicesConfirm  StringKey = "services.confirm"
	KeyServicesEmpty    StringKey = "services.empty"
	KeyPaymentPrompt    StringKey = "payment.prompt"
	KeyBack             StringKey = "back"
	KeySummary          StringKey = "summary"
	KeyOperatorConnect  StringKey = "operator.connect"
	KeyOperatorButton   StringKey = "operator.button"
	KeyClosing          StringKey = "closing"
	KeyAskOperator      StringKey = "ask_operator"
	KeyUseButtons       StringKey = "use_buttons"
	KeyRateLimited      StringKey = "rate_limited"
	KeyGenericError     StringKey = "error.generic"
	KeyServiceTuning    StringKey = "service.tuning"
	KeyServiceCustoms   StringKey = "service.customs"
	KeyServiceDelivery  StringKey = "service.delivery"
	KeyServiceInsurance StringKey = "service.insurance"
	KeyServiceInspect   StringKey = "service.inspection"
)

// translations holds the full string table. English is the fallback and
// must cover every key; the other languages cover the user-visible flow.
// The welcome message is intentionally bilingual and only defined for the
// fallback language: it is shown before a language has been chosen.
var translations = map[Language]map[StringKey]string{
	LangEnglish: {
		KeyWelcome: "👋 Welcome to GHUB International!\n" +
			"Wir begleiten Ihren Fahrzeugimport von A bis Z.\n" +
			"We guide your vehicle import from start to finish.",
		KeyLanguagePrompt:   "Please choose your language:",
		KeyRequestPrompt:    "What vehicle are you looking for? Describe make, model, year and budget in a single message.",
		KeyServicesIntro:    "Thanks! Your request has been saved.",
		KeyServicesTitle:    "Which services do you need? Tap to select, then confirm.",
		KeyServicesConfirm:  "✅ Confirm",
		KeyServicesEmpty:    "Please select at least one service before confirming.",
		KeyPaymentPrompt:    "How would you like to pay?",
		KeyBack:             "⬅️ Back",
		KeySummary:          "📋 Your request:\nVehicle: {request}\nServices: {services}\nPayment: {payment}",
		KeyOperatorConnect:  "Your personal manager {operator} will take it from here.",
		KeyOperatorButton:   "💬 Contact {operator}",
		KeyClosing:          "Thank you! We usually reply within one business day.",
		KeyAskOperator:      "Your request is already with your manager — please message them directly.",
		KeyUseButtons:       "Please use the buttons above to continue.",
		KeyRateLimited:      "You're sending messages too quickly. Please wait a moment.",
		KeyGenericError:     "Something went wrong on our side. Please try again later.",
		KeyServiceTuning:    "Tuning",
		KeyServiceCustoms:   "Customs clearance",
		KeyServiceDelivery:  "Delivery",
		KeyServiceInsurance: "Insurance",
		KeyServiceInspect:   "Inspection",
	},
	LangGerman: {
		KeyLanguagePrompt:   "Bitte wählen Sie Ihre Sprache:",
		KeyRequestPrompt:    "Welches Fahrzeug suchen Sie? Beschreiben Sie Marke, Modell, Baujahr und Budget in einer Nachricht.",
		KeyServicesIntro:    "Danke! Ihre Anfrage wurde gespeichert.",
		KeyServicesTitle:    "Welche Leistungen benötigen Sie? Zum Auswählen antippen, dann bestätigen.",
		KeyServicesConfirm:  "✅ Bestätigen",
		KeyServicesEmpty:    "Bitte wählen Sie mindestens eine Leistung aus, bevor Sie bestätigen.",
		KeyPaymentPrompt:    "Wie möchten Sie bezahlen?",
		KeyBack:             "⬅️ Zurück",
		KeySummary:          "📋 Ihre Anfrage:\nFahrzeug: {request}\nLeistungen: {services}\nZahlung: {payment}",
		KeyOperatorConnect:  "Ihr persönlicher Manager {operator} übernimmt ab hier.",
		KeyOperatorButton:   "💬 {operator} kontaktieren",
		KeyClosing:          "Vielen Dank! Wir melden uns in der Regel innerhalb eines Werktags.",
		KeyAskOperator:      "Ihre Anfrage liegt bereits bei Ihrem Manager — bitte schreiben Sie ihm direkt.",
		KeyUseButtons:       "Bitte verwenden Sie die Schaltflächen oben, um fortzufahren.",
		KeyRateLimited:      "Sie senden Nachrichten zu schnell. Bitte warten Sie einen Moment.",
		KeyGenericError:     "Bei uns ist etwas schiefgelaufen. Bitte versuchen Sie es später erneut.",
		KeyServiceTuning:    "Tuning",
		KeyServiceCustoms:   "Zollabfertigung",
		KeyServiceDelivery:  "Lieferung",
		KeyServiceInsurance: "Versicherung",
		KeyServiceInspect:   "Begutachtung",
	},
	LangRussian: {
		KeyLanguagePrompt:   "Пожалуйста, выберите язык:",
		KeyRequestPrompt:    "Какой автомобиль вы ищете? Опишите марку, модель, год и бюджет одним сообщением.",
		KeyServicesIntro:    "Спасибо! Ваш запрос сохранён.",
		KeyServicesTitle:    "Какие услуги вам нужны? Нажмите для выбора, затем подтвердите.",
		KeyServicesConfirm:  "✅ Подтвердить",
		KeyServicesEmpty:    "Пожалуйста, выберите хотя бы одну услугу перед подтверждением.",
		KeyPaymentPrompt:    "Как вам удобно оплатить?",
		KeyBack:             "⬅️ Назад",
		KeySummary:          "📋 Ваш запрос:\nАвтомобиль: {request}\nУслуги: {services}\nОплата: {payment}",
		KeyOperatorConnect:  "Ваш персональный менеджер {operator} продолжит работу с вами.",
		KeyOperatorButton:   "💬 Написать {operator}",
		KeyClosing:          "Спасибо! Обычно мы отвечаем в течение одного рабочего дня.",
		KeyAskOperator:      "Ваш запрос уже у менеджера — пожалуйста, напишите ему напрямую.",
		KeyUseButtons:       "Пожалуйста, используйте кнопки выше, чтобы продолжить.",
		KeyRateLimited:      "Вы отправляете сообщения слишком часто. Подождите немного.",
		KeyGenericError:     "У нас что-то пошло не так. Попробуйте позже.",
		KeyServiceTuning:    "Тюнинг",
		KeyServiceCustoms:   "Растаможка",
		KeyServiceDelivery:  "Доставка",
		KeyServiceInsurance: "Страхование",
		KeyServiceInspect:   "Осмотр",
	},
	LangUkrainian: {
		KeyLanguagePrompt:   "Будь ласка, оберіть мову:",
		KeyRequestPrompt:    "Який автомобіль ви шукаєте? Опишіть марку, модель, рік і бюджет одним повідомленням.",
		KeyServicesIntro:    "Дякуємо! Ваш запит збережено.",
		KeyServicesTitle:    "Які послуги вам потрібні? Натисніть для вибору, потім підтвердіть.",
		KeyServicesConfirm:  "✅ Підтвердити",
		KeyServicesEmpty:    "Будь ласка, оберіть хоча б одну послугу перед підтвердженням.",
		KeyPaymentPrompt:    "Як вам зручно оплатити?",
		KeyBack:             "⬅️ Назад",
		KeySummary:          "📋 Ваш запит:\nАвтомобіль: {request}\nПослуги: {services}\nОплата: {payment}",
		KeyOperatorConnect:  "Ваш персональний менеджер {operator} продовжить роботу з вами.",
		KeyOperatorButton:   "💬 Написати {operator}",
		KeyClosing:          "Дякуємо! Зазвичай ми відповідаємо протягом одного робочого дня.",
		KeyAskOperator:      "Ваш запит уже в менеджера — будь ласка, напишіть йому напряму.",
		KeyUseButtons:       "Будь ласка, скористайтеся кнопками вище, щоб продовжити.",
		KeyRateLimited:      "Ви надсилаєте повідомлення надто часто. Зачекайте трохи.",
		KeyGenericError:     "У нас щось пішло не так. Спробуйте пізніше.",
		KeyServiceTuning:    "Тюнінг",
		KeyServiceCustoms:   "Розмитнення",
		KeyServiceDelivery:  "Доставка",
		KeyServiceInsurance: "Страхування",
		KeyServiceInspect:   "Огляд",
	},
	LangPolish: {
		KeyLanguagePrompt:   "Proszę wybrać język:",
		KeyRequestPrompt:    "Jakiego pojazdu Pan/Pani szuka? Proszę opisać markę, model, rocznik i budżet w jednej wiadomości.",
		KeyServicesIntro:    "Dziękujemy! Zapytanie zostało zapisane.",
		KeyServicesTitle:    "Jakich usług Pan/Pani potrzebuje? Dotknij, aby wybrać, następnie potwierdź.",
		KeyServicesConfirm:  "✅ Potwierdź",
		KeyServicesEmpty:    "Proszę wybrać co najmniej jedną usługę przed potwierdzeniem.",
		KeyPaymentPrompt:    "Jak chce Pan/Pani zapłacić?",
		KeyBack:             "⬅️ Wstecz",
		KeySummary:          "📋 Twoje zapytanie:\nPojazd: {request}\nUsługi: {services}\nPłatność: {payment}",
		KeyOperatorConnect:  "Twój osobisty menedżer {operator} przejmie sprawę od tego momentu.",
		KeyOperatorButton:   "💬 Napisz do: {operator}",
		KeyClosing:          "Dziękujemy! Zwykle odpowiadamy w ciągu jednego dnia roboczego.",
		KeyAskOperator:      "Twoje zapytanie jest już u menedżera — napisz do niego bezpośrednio.",
		KeyUseButtons:       "Proszę użyć przycisków powyżej, aby kontynuować.",
		KeyRateLimited:      "Wysyłasz wiadomości zbyt szybko. Poczekaj chwilę.",
		KeyGenericError:     "Coś poszło nie tak po naszej stronie. Spróbuj ponownie później.",
		KeyServiceTuning:    "Tuning",
		KeyServiceCustoms:   "Odprawa celna",
		KeyServiceDelivery:  "Dostawa",
		KeyServiceInsurance: "Ubezpieczenie",
		KeyServiceInspect:   "Inspekcja",
	},
}
