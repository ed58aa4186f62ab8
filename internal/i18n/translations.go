package i18n

var tables = map[Language]map[string]string{
	English: {
		// Page titles
		"page_title_dashboard": "Dashboard",
		"page_title_assistant": "AI Assistant",
		"page_title_finance":   "Finance",
		"page_title_analytics": "Analytics",
		"page_title_planner":   "Crop Planner",

		// Header
		"header_app_name":  "AgriPay AI",
		"header_user_role": "Maize Farmer",

		// Sidebar
		"sidebar_dashboard":       "Dashboard",
		"sidebar_assistant":       "AI Assistant",
		"sidebar_finance":         "Finance",
		"sidebar_analytics":       "Analytics",
		"sidebar_planner":         "Crop Planner",
		"sidebar_language":        "Language",
		"sidebar_pro_title":       "Upgrade to Pro",
		"sidebar_pro_description": "Get access to satellite imagery and advanced analytics.",

		// Language switch
		"language_prompt":  "Choose the display language:",
		"language_changed": "Language set to English.",

		// Status badges
		"status_completed": "Completed",
		"status_pending":   "Pending",
		"status_failed":    "Failed",

		// Table headers
		"table_header_description": "Description",
		"table_header_amount":      "Amount",
		"table_header_date":        "Date",
		"table_header_status":      "Status",
		"table_empty":              "No transactions yet.",

		// Dashboard
		"dashboard_quick_actions":       "Quick Actions",
		"dashboard_action_ask":          "Ask AI",
		"dashboard_action_ask_desc":     "Get crop advice",
		"dashboard_action_upload":       "Upload Photo",
		"dashboard_action_upload_desc":  "Diagnose disease",
		"dashboard_action_loan":         "Request Loan",
		"dashboard_action_loan_desc":    "Apply for microcredit",
		"dashboard_action_receive":      "Receive Payment",
		"dashboard_action_receive_desc": "Get paid in USDC",
		"dashboard_card_weather_title":  "Local Weather",
		"dashboard_card_weather_value":  "28°C, Sunny",
		"dashboard_card_weather_desc":   "Next rain in 2 days",
		"dashboard_card_balance_title":  "USDC Balance",
		"dashboard_card_balance_desc":   "+ $350 this week",
		"dashboard_card_alerts_title":   "Active AI Alerts",
		"dashboard_card_alerts_value":   "1 Critical",
		"dashboard_card_alerts_desc":    "Nitrogen deficiency detected",
		"dashboard_card_yield_title":    "Yield Prediction",
		"dashboard_card_yield_value":    "8.5 tons/ha",
		"dashboard_card_yield_desc":     "Based on current data",
		"dashboard_transactions_title":  "Recent Transactions",
		"dashboard_unavailable":         "Farm data is unavailable right now.",

		// AI assistant
		"assistant_greeting":          "Hello! How can I help you with your farm today? You can ask me a question or upload a photo of a plant for diagnosis.",
		"assistant_input_placeholder": "Ask about your crops or upload an image...",
		"assistant_image_error":       "Sorry, there was an error processing your image.",
		"assistant_image_prompt":      "Please analyze this image.",
		"assistant_image_attached":    "Photo attached. Add a question or press Send.",
		"assistant_image_removed":     "Photo removed.",
		"assistant_send":              "Send",
		"assistant_remove_image":      "Remove photo",
		"assistant_camera":            "Take photo",
		"assistant_wait":              "Please wait for the answer to your previous question. Your message was kept as a draft.",
		"assistant_history_empty":     "No messages yet.",
		"assistant_you":               "You",
		"assistant_photo_caption":     "Your photo",
		"advisor_error_no_credential": "API Key is not configured. Please set the GEMINI_API_KEY environment variable.",
		"advisor_error_request":       "Sorry, I encountered an error while processing your request. Please try again.",
		"advisor_error_plan":          "Sorry, I encountered an error while generating the crop plan. Please try again.",

		// Camera
		"cameramodal_title":      "Take a photo",
		"cameramodal_take_photo": "Take Photo",
		"cameramodal_refresh":    "Refresh",
		"cameramodal_retake":     "Retake",
		"cameramodal_accept":     "Use Photo",
		"cameramodal_close":      "Close",
		"cameramodal_error":      "Could not access the camera. Please check permissions and try again.",
		"cameramodal_closed":     "Camera closed.",
		"cameramodal_expired":    "This camera view is no longer active.",
		"cameramodal_live":       "Point the camera at the plant, then press Take Photo.",
		"cameramodal_preview":    "Use this photo?",

		// Finance
		"finance_balance_title": "USDC Wallet Balance",
		"finance_balance_desc":  "Available for payments and loans",
		"finance_history_title": "Full Transaction History",

		// Analytics
		"analytics_title":               "Farm Analytics",
		"analytics_yield_title":         "Yield History (tons/hectare)",
		"analytics_yield_predicted":     "(Pred)",
		"analytics_expense_title":       "Expense Breakdown",
		"analytics_expense_fertilizer":  "Fertilizer",
		"analytics_expense_seeds":       "Seeds",
		"analytics_expense_labor":       "Labor",
		"analytics_expense_equipment":   "Equipment",
		"analytics_soil_title":          "Soil Analysis Insights",
		"analytics_soil_nitrogen":       "Nitrogen (N):",
		"analytics_soil_phosphorus":     "Phosphorus (P):",
		"analytics_soil_potassium":      "Potassium (K):",
		"analytics_soil_ph":             "pH Level:",
		"analytics_soil_low":            "Low",
		"analytics_soil_optimal":        "Optimal",
		"analytics_soil_medium":         "Medium",
		"analytics_soil_ph_value":       "6.8 (Slightly Acidic)",
		"analytics_soil_recommendation": "AI Recommendation: Apply a nitrogen-rich fertilizer. See AI Assistant for specific product suggestions.",

		// Planner
		"planner_title":        "AI Crop Planner",
		"planner_description":  "Get a week-by-week plan for your next crop cycle.",
		"planner_form_hint":    "Send the details in one message: crop | season | land size (ha) | location\nExample: Maize | Rainy season | 2 | Kisumu, Kenya",
		"planner_form_invalid": "Please fill in all four fields separated by |.",
		"planner_generating":   "Generating your crop plan...",
		"planner_busy":         "A crop plan is already being generated.",
		"planner_result_title": "Your Crop Plan",

		// Generic
		"generic_error": "Something went wrong. Please try again.",
		"rate_limited":  "Too many messages. Please wait a moment.",
	},
	French: {
		// Page titles
		"page_title_dashboard": "Tableau de bord",
		"page_title_assistant": "Assistant IA",
		"page_title_finance":   "Finance",
		"page_title_analytics": "Analyses",
		"page_title_planner":   "Planificateur",

		// Header
		"header_app_name":  "AgriPay AI",
		"header_user_role": "Producteur de maïs",

		// Sidebar
		"sidebar_dashboard":       "Tableau de bord",
		"sidebar_assistant":       "Assistant IA",
		"sidebar_finance":         "Finance",
		"sidebar_analytics":       "Analyses",
		"sidebar_planner":         "Planificateur",
		"sidebar_language":        "Langue",
		"sidebar_pro_title":       "Passer à Pro",
		"sidebar_pro_description": "Accédez à l'imagerie satellite et aux analyses avancées.",

		// Language switch
		"language_prompt":  "Choisissez la langue d'affichage :",
		"language_changed": "Langue réglée sur le français.",

		// Status badges
		"status_completed": "Terminé",
		"status_pending":   "En attente",
		"status_failed":    "Échoué",

		// Table headers
		"table_header_description": "Description",
		"table_header_amount":      "Montant",
		"table_header_date":        "Date",
		"table_header_status":      "Statut",
		"table_empty":              "Aucune transaction pour le moment.",

		// Dashboard
		"dashboard_quick_actions":       "Actions Rapides",
		"dashboard_action_ask":          "Demander à l'IA",
		"dashboard_action_ask_desc":     "Conseils de culture",
		"dashboard_action_upload":       "Uploader Photo",
		"dashboard_action_upload_desc":  "Diagnostic maladie",
		"dashboard_action_loan":         "Demander un Prêt",
		"dashboard_action_loan_desc":    "Microcrédit",
		"dashboard_action_receive":      "Recevoir Paiement",
		"dashboard_action_receive_desc": "Payé en USDC",
		"dashboard_card_weather_title":  "Météo Locale",
		"dashboard_card_weather_value":  "28°C, Ensoleillé",
		"dashboard_card_weather_desc":   "Prochaine pluie dans 2 jours",
		"dashboard_card_balance_title":  "Solde USDC",
		"dashboard_card_balance_desc":   "+ 350 $ cette semaine",
		"dashboard_card_alerts_title":   "Alertes IA Actives",
		"dashboard_card_alerts_value":   "1 Critique",
		"dashboard_card_alerts_desc":    "Carence en azote détectée",
		"dashboard_card_yield_title":    "Prévision de Rendement",
		"dashboard_card_yield_value":    "8,5 tonnes/ha",
		"dashboard_card_yield_desc":     "Basé sur les données actuelles",
		"dashboard_transactions_title":  "Transactions Récentes",
		"dashboard_unavailable":         "Les données de la ferme sont indisponibles pour le moment.",

		// AI assistant
		"assistant_greeting":          "Bonjour! Comment puis-je vous aider avec votre ferme aujourd'hui? Posez une question ou uploadez une photo de plante pour un diagnostic.",
		"assistant_input_placeholder": "Questionnez sur vos cultures ou uploadez une image...",
		"assistant_image_error":       "Désolé, une erreur est survenue lors du traitement de votre image.",
		"assistant_image_prompt":      "Veuillez analyser cette image.",
		"assistant_image_attached":    "Photo jointe. Ajoutez une question ou appuyez sur Envoyer.",
		"assistant_image_removed":     "Photo retirée.",
		"assistant_send":              "Envoyer",
		"assistant_remove_image":      "Retirer la photo",
		"assistant_camera":            "Prendre une photo",
		"assistant_wait":              "Veuillez attendre la réponse à votre question précédente. Votre message a été gardé en brouillon.",
		"assistant_history_empty":     "Aucun message pour le moment.",
		"assistant_you":               "Vous",
		"assistant_photo_caption":     "Votre photo",
		"advisor_error_no_credential": "La clé API n'est pas configurée. Veuillez définir la variable d'environnement GEMINI_API_KEY.",
		"advisor_error_request":       "Désolé, une erreur est survenue lors du traitement de votre demande. Veuillez réessayer.",
		"advisor_error_plan":          "Désolé, une erreur est survenue lors de la génération du plan de culture. Veuillez réessayer.",

		// Camera
		"cameramodal_title":      "Prendre une photo",
		"cameramodal_take_photo": "Prendre la Photo",
		"cameramodal_refresh":    "Actualiser",
		"cameramodal_retake":     "Reprendre",
		"cameramodal_accept":     "Utiliser la Photo",
		"cameramodal_close":      "Fermer",
		"cameramodal_error":      "Impossible d'accéder à la caméra. Veuillez vérifier les autorisations et réessayer.",
		"cameramodal_closed":     "Caméra fermée.",
		"cameramodal_expired":    "Cette vue de la caméra n'est plus active.",
		"cameramodal_live":       "Pointez la caméra vers la plante, puis appuyez sur Prendre la photo.",
		"cameramodal_preview":    "Utiliser cette photo ?",

		// Finance
		"finance_balance_title": "Solde du portefeuille USDC",
		"finance_balance_desc":  "Disponible pour paiements et prêts",
		"finance_history_title": "Historique Complet des Transactions",

		// Analytics
		"analytics_title":               "Analyses de la Ferme",
		"analytics_yield_title":         "Historique de Rendement (tonnes/hectare)",
		"analytics_yield_predicted":     "(Prév)",
		"analytics_expense_title":       "Répartition des Dépenses",
		"analytics_expense_fertilizer":  "Engrais",
		"analytics_expense_seeds":       "Semences",
		"analytics_expense_labor":       "Main d'oeuvre",
		"analytics_expense_equipment":   "Équipement",
		"analytics_soil_title":          "Aperçu de l'Analyse du Sol",
		"analytics_soil_nitrogen":       "Azote (N):",
		"analytics_soil_phosphorus":     "Phosphore (P):",
		"analytics_soil_potassium":      "Potassium (K):",
		"analytics_soil_ph":             "Niveau de pH:",
		"analytics_soil_low":            "Faible",
		"analytics_soil_optimal":        "Optimal",
		"analytics_soil_medium":         "Moyen",
		"analytics_soil_ph_value":       "6.8 (Légèrement acide)",
		"analytics_soil_recommendation": "Recommandation IA: Appliquez un engrais riche en azote. Voir l'Assistant IA pour des suggestions de produits spécifiques.",

		// Planner
		"planner_title":        "Planificateur de Cultures IA",
		"planner_description":  "Obtenez un plan semaine par semaine pour votre prochain cycle de culture.",
		"planner_form_hint":    "Envoyez les détails en un message : culture | saison | superficie (ha) | lieu\nExemple : Maïs | Saison des pluies | 2 | Kisumu, Kenya",
		"planner_form_invalid": "Veuillez remplir les quatre champs séparés par |.",
		"planner_generating":   "Génération de votre plan de culture...",
		"planner_busy":         "Un plan de culture est déjà en cours de génération.",
		"planner_result_title": "Votre Plan de Culture",

		// Generic
		"generic_error": "Une erreur est survenue. Veuillez réessayer.",
		"rate_limited":  "Trop de messages. Veuillez patienter un instant.",
	},
}
