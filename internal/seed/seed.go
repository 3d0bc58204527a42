// Package seed holds the reference data written on first init: the stage
// information catalog and the starter email templates. Operators edit both
// afterwards; this is only the starting point.
package seed

import (
	"github.com/example/casetrack/internal/core/stage"
	"github.com/example/casetrack/internal/models"
)

// Templates returns the starter email templates. Placeholders like {{unit}}
// are substituted by whatever composes the mail; this tool only stores them.
func Templates() []models.EmailTemplate {
	return []models.EmailTemplate{
		{
			ID:      "new-referral",
			Name:    "New Referral Request",
			Subject: "PSH Unit Available - Referral Request for {{unit}}",
			Body: `Hi JOHS Team,

We have a PSH unit available at Vibrant and are requesting a referral.

Unit Details:
- Unit Number: {{unit}}
- Property: Vibrant Apartments
- Available Date: {{currentDate}}

Please send a suitable referral for this Permanent Supportive Housing unit within the next 3 weeks.

Thank you,
{{userName}}`,
			StageID:    stage.AwaitingReferral,
			Recipients: []string{"familyca@multco.us"},
		},
		{
			ID:      "document-request",
			Name:    "Document Request to Case Manager",
			Subject: "Document Request for {{applicantName}} - {{unit}}",
			Body: `Hi {{caseManager}},

I hope you're doing well. I'm reaching out regarding {{applicantName}}'s housing application for {{unit}}.

We need the following documents to proceed with the application:
- Social Security Cards for all household members
- Birth Certificates for children under 18
- Photo IDs for adults
- Income verification documents

Could you please help {{applicantName}} gather these documents? You can reach them at {{applicantPhone}} or {{applicantEmail}}.

Please let me know if you have any questions.

Best regards,
{{userName}}`,
			StageID:    stage.ApplicationPacket,
			Recipients: []string{"{{caseManagerEmail}}"},
		},
		{
			ID:      "background-check-update",
			Name:    "Background Check Status Update",
			Subject: "Background Check Update - {{applicantName}}",
			Body: `Hi {{caseManager}},

Quick update on {{applicantName}}'s application for {{unit}}:

The background check has been submitted and we're awaiting results. This typically takes 5-7 business days.

I'll keep you posted on any updates.

Contact me if you have any questions.

Best,
{{userName}}`,
			StageID:    stage.BackgroundCheck,
			Recipients: []string{"{{caseManagerEmail}}"},
		},
		{
			ID:      "appeal-needed",
			Name:    "Appeal Documentation Needed",
			Subject: "Appeal Documentation Required - {{applicantName}}",
			Body: `Hi {{caseManager}},

{{applicantName}}'s background check for {{unit}} requires an appeal or reasonable accommodation request.

Please help {{applicantName}} prepare appeal documentation. They have 10 business days from the denial date to submit the appeal to keep the unit on hold.

Required for appeal:
- Written explanation of circumstances
- Supporting documentation (treatment records, employment verification, etc.)
- Character references if applicable

Please contact me at your earliest convenience to discuss next steps.

Time is critical on this one.

Thanks,
{{userName}}`,
			StageID:    stage.AppealDocumentation,
			Recipients: []string{"{{caseManagerEmail}}"},
		},
	}
}

// StageInfos returns the stage information catalog, one record per workflow
// stage in board order.
func StageInfos() []models.StageInfo {
	return []models.StageInfo{
		{
			ID:          stage.AwaitingReferral,
			Title:       stage.Title(stage.AwaitingReferral),
			Description: "A PSH unit has become available and we are waiting for a referral from JOHS Family Coordinated Access.",
			Duration:    "3 weeks maximum",
			KeyStakeholders: models.Stakeholders{
				Primary:    "Vibrant Property Manager",
				Supporting: []string{"JOHS Family CA Team", "IPM Property Management"},
			},
			RequiredActions: []string{
				"Notify JOHS of vacant unit",
				"Get unit inspected",
				"Add referral request to PBS8 Google tracking sheet",
			},
			CommonDelays: []string{
				"JOHS taking longer than 3 weeks to respond",
				"Incomplete referral request information",
				"High demand for PSH units",
			},
			NextSteps: "Once JOHS provides a referral, begin LIHTC screening and application process",
			Tips: []string{
				"If no referral after 3 weeks, can pull from Section 8 waitlist",
				"Include IHI Housing Stability Specialist on HP referrals",
				"Track all communication in PBS8 tracking sheet",
			},
		},
		{
			ID:          stage.ApplicationPacket,
			Title:       stage.Title(stage.ApplicationPacket),
			Description: "Applicant and case manager work together to complete the initial application packet and gather vital documents.",
			Duration:    "1-2 weeks",
			KeyStakeholders: models.Stakeholders{
				Primary:    "Case Manager (IHI/JOIN)",
				Supporting: []string{"Applicant", "Vibrant Property Manager", "Family CA Staff"},
			},
			RequiredActions: []string{
				"Call referring Case Manager and assess if applicant needs to collect appeal documentation early and to explain process, which includes government docs",
				"Verify Application accuracy/correctness",
			},
			CommonDelays: []string{
				"Missing birth certificates for children",
				"Applicant unresponsive or hard to reach",
				"Difficulty obtaining social security cards",
				"Case manager caseload issues",
			},
			NextSteps: "Submit completed packet for background check screening",
			Tips: []string{
				"Start gathering documents immediately upon referral",
				"Case managers can provide direct support",
				"Keep applicant informed of requirements",
			},
			Documents: []models.StageDocument{
				{Name: "Application Packet Overview", Filename: "Application Packet Overview.pdf", Description: "Complete overview of application requirements", Required: true},
				{Name: "Eligibility Screening Form", Filename: "Eligibility Screening for Homeless Preference Units at VIBRANT.pdf", Description: "Screening form for homeless preference units", Required: true},
				{Name: "Home Forward ROI", Filename: "HFROI.pdf", Description: "Release of Information for Home Forward", Required: true},
				{Name: "Pre-Application (Vibrant)", Filename: "PreApplication(Vibrant).pdf", Description: "Vibrant-specific pre-application form", Required: true},
				{Name: "Financial Responsibility Application", Filename: "Standard Financially Responsible Application.pdf", Description: "Standard financially responsible application", Required: true},
			},
		},
		{
			ID:          stage.BackgroundCheck,
			Title:       stage.Title(stage.BackgroundCheck),
			Description: "Background screening is conducted to determine applicant eligibility. Appeals may be needed if screening criteria are not met.",
			Duration:    "1 week for screening + 7-10 days for appeals if needed",
			KeyStakeholders: models.Stakeholders{
				Primary:    "Vibrant Property Manager",
				Supporting: []string{"IPM Compliance Department", "Case Manager", "Applicant"},
			},
			RequiredActions: []string{
				"Send Background check which should be what activates this stage",
				"Alert Case manager and Applicant when background results are received",
			},
			CommonDelays: []string{
				"Background check processing delays",
				"Need for reasonable accommodation requests",
				"Appeals requiring legal review",
				"Incomplete appeal documentation",
			},
			NextSteps: "If approved, move to Tax Credit paperwork. If denied, process appeals or request new referral.",
			Tips: []string{
				"Recommend submitting appeal documents with application if issues expected",
				"Unit held for 10 business days if appeal submitted timely",
				"Compliance department handles all appeal decisions",
			},
		},
		{
			ID:          stage.AppealDocumentation,
			Title:       stage.Title(stage.AppealDocumentation),
			Description: "Applicant needs to submit appeal or reasonable accommodation documentation due to background check issues.",
			Duration:    "7-10 business days (longer if legal input needed)",
			KeyStakeholders: models.Stakeholders{
				Primary:    "IPM Compliance Department",
				Supporting: []string{"Case Manager", "Applicant", "Legal Team (if needed)"},
			},
			RequiredActions: []string{
				"Ensure Case manager is well informed on Appeal process as well as time window",
			},
			CommonDelays: []string{
				"Difficulty obtaining medical records",
				"Complex legal issues requiring review",
				"Applicant not understanding appeal process",
				"Missing required documentation",
			},
			NextSteps: "Compliance department reviews and makes final decision. If approved, continue to Tax Credit paperwork.",
			Tips: []string{
				"Time is critical - only 10 business days to submit",
				"Case managers should assist with appeal preparation",
				"Unit is held pending appeal decision",
			},
		},
		{
			ID:          stage.TaxCreditPaperwork,
			Title:       stage.Title(stage.TaxCreditPaperwork),
			Description: "Income certification and LIHTC paperwork completion. Can take 1 week but applicants typically need more time for documents.",
			Duration:    "3 weeks (can be faster with all docs ready)",
			KeyStakeholders: models.Stakeholders{
				Primary:    "Vibrant Property Manager",
				Supporting: []string{"IPM Compliance Department", "Applicant", "Case Manager"},
			},
			RequiredActions: []string{
				"Schedule Tax credit work appointment, which coincides with initiating this stage",
				"Ensure that applicant understands what documentation they need to bring",
				"Verify correctness of paperwork before applicant leaves meeting",
				"Send completed Packet to Alexia",
			},
			CommonDelays: []string{
				"Missing income verification documents",
				"Changes in employment status",
				"Complex income situations",
				"Applicant responsiveness to document requests",
			},
			NextSteps: "Once income certified, send intake request to Home Forward",
			Tips: []string{
				"Documents from this stage can be reused for HF Intake Packet",
				"Applicants have 5 days to respond to each information request",
				"Start preparing HF referral documents simultaneously",
			},
			Documents: []models.StageDocument{
				{Name: "Tax Credit Packet", Filename: "Tax Credit Packet.pdf", Description: "Complete tax credit documentation packet", Required: true},
				{Name: "Tax Credit Paperwork Overview", Filename: "Tax Credit Paperwork Overview.pdf", Description: "Overview and instructions for tax credit process", Required: true},
			},
		},
		{
			ID:          stage.AlexiaHFProcessing,
			Title:       stage.Title(stage.AlexiaHFProcessing),
			Description: "Property manager sends intake request to Home Forward with required documentation after passing LIHTC screening.",
			Duration:    "1-2 days for submission",
			KeyStakeholders: models.Stakeholders{
				Primary:    "Vibrant Property Manager",
				Supporting: []string{"Home Forward", "IPM Compliance"},
			},
			RequiredActions: []string{
				"Send New Referral Packet to HF at same time that Tax Credit paperwork is sent to Alexia, which initiates this stage",
				"Check in on Shawnda after two weeks",
			},
			CommonDelays: []string{
				"Missing final accounting paperwork",
				"Incomplete pre-application",
				"Delays in updating PSH waitlist",
			},
			NextSteps: "Home Forward conducts their own background check and screening process",
			Tips: []string{
				"Send all documents simultaneously to avoid delays",
				"Ensure PSH waitlist is updated and link provided",
				"Double-check all forms are complete before submission",
			},
			Documents: []models.StageDocument{
				{Name: "New Referral Packet Overview", Filename: "New Referral Packet Overview.pdf", Description: "Complete overview of referral packet requirements", Required: true},
				{Name: "Final Accounting Checklist", Filename: "Final Accounting Checklist.pdf", Description: "Checklist for final accounting paperwork", Required: true},
				{Name: "PBV Referral Form", Filename: "PBV Referral Form.pdf", Description: "Project-based voucher referral form", Required: true},
				{Name: "Home Forward ROI", Filename: "HFROI.pdf", Description: "Release of Information for Home Forward", Required: true},
				{Name: "Pre-Application (Vibrant)", Filename: "PreApplication(Vibrant).pdf", Description: "Vibrant-specific pre-application form", Required: true},
			},
		},
		{
			ID:          stage.HFIntakePacket,
			Title:       stage.Title(stage.HFIntakePacket),
			Description: "Home Forward completes their screening and sends intake packet back to property manager if approved.",
			Duration:    "2 weeks for HF processing",
			KeyStakeholders: models.Stakeholders{
				Primary:    "Home Forward",
				Supporting: []string{"Vibrant Property Manager", "Applicant"},
			},
			RequiredActions: []string{
				"Schedule HF Intake Appointment, which initiates this step",
				"Ensure all government docs and Income Verification has been collected",
				"Verify accuracy of packet while applicant is still present at appointment",
			},
			CommonDelays: []string{
				"Home Forward processing delays",
				"Additional screening requirements",
				"Need for applicant clarification",
				"High volume at Home Forward",
			},
			NextSteps: "Property manager calls applicant to schedule intake packet completion appointment",
			Tips: []string{
				"Property manager should check in weekly after 3 weeks",
				"Schedule unit inspection during this waiting period",
				"Prepare applicant for next steps",
			},
		},
		{
			ID:          stage.HFPacketCompletion,
			Title:       stage.Title(stage.HFPacketCompletion),
			Description: "Property manager and Housing Stability Specialist assist applicant with completing the intake packet including all vital documents.",
			Duration:    "1-2 weeks",
			KeyStakeholders: models.Stakeholders{
				Primary:    "Vibrant Property Manager",
				Supporting: []string{"IHI Housing Stability Specialist", "IPM Compliance", "Applicant"},
			},
			RequiredActions: []string{
				"Check in on Shawnda after two weeks to ensure packet is being processed",
			},
			CommonDelays: []string{
				"Missing vital documents",
				"Scheduling conflicts",
				"Incomplete packet requiring corrections",
				"Document verification issues",
			},
			NextSteps: "Wait for Home Forward to schedule final intake appointment",
			Tips: []string{
				"All vital documents must be included at this stage",
				"Double-check packet completeness before submission",
				"Housing Stability Specialist provides crucial support for HP units",
			},
			Documents: []models.StageDocument{
				{Name: "Home Forward Intake Packet Overview", Filename: "Home Forward Intake Packet Overview.pdf", Description: "Overview and instructions for HF intake process", Required: true},
				{Name: "Home Forward Intake Packet", Filename: "Home Forward Intake Packet.pdf", Description: "Complete intake packet forms", Required: true},
			},
		},
		{
			ID:          stage.VideoIntake,
			Title:       stage.Title(stage.VideoIntake),
			Description: "Applicant waits for Home Forward to schedule and complete the final intake appointment.",
			Duration:    "2-3 weeks",
			KeyStakeholders: models.Stakeholders{
				Primary:    "Home Forward",
				Supporting: []string{"Applicant", "Vibrant Property Manager"},
			},
			RequiredActions: []string{
				"Schedule contract and lease signing with resident which initiates this step",
				"Hand off keys!",
			},
			CommonDelays: []string{
				"Home Forward scheduling delays",
				"Applicant availability issues",
				"Need for additional documentation",
				"Technical issues with video appointments",
			},
			NextSteps: "Home Forward emails contract to property manager within one week of completed intake",
			Tips: []string{
				"Property manager checks in weekly after 3 weeks",
				"Ensure applicant is prepared for appointment",
				"Have backup documentation ready if needed",
			},
		},
		{
			ID:          stage.LeaseSigning,
			Title:       stage.Title(stage.LeaseSigning),
			Description: "Final contract received from Home Forward and move-in is scheduled with appropriate support teams.",
			Duration:    "1 week",
			KeyStakeholders: models.Stakeholders{
				Primary:    "Vibrant Property Manager",
				Supporting: []string{"Home Forward", "Applicant", "Support Teams"},
			},
			RequiredActions: []string{
				"Welcome resident",
				"Schedule final paperwork meeting with wraparound support case manager",
			},
			CommonDelays: []string{
				"Contract processing delays",
				"Applicant scheduling issues",
				"Unit preparation delays",
			},
			NextSteps: "Applicant moves in and wraparound support begins",
			Tips: []string{
				"Notify appropriate support teams immediately",
				"Provide TIC for HP units to Housing Stability Specialist",
				"Confirm all parties are ready for move-in",
			},
			Documents: []models.StageDocument{
				{Name: "Contract and Lease Packet Overview", Filename: "Contract and Lease Packet Overview.pdf", Description: "Overview of contract and lease signing process", Required: true},
			},
		},
		{
			ID:          stage.WraparoundIntake,
			Title:       stage.Title(stage.WraparoundIntake),
			Description: "Applicant has moved in and ongoing support services are initiated by appropriate case management teams.",
			Duration:    "Ongoing",
			KeyStakeholders: models.Stakeholders{
				Primary:    "JOIN MPSH Team (PSH) / IHI Housing Stability Specialist (HP)",
				Supporting: []string{"Vibrant Property Manager", "Applicant"},
			},
			RequiredActions: []string{
				"Confirm move-in with property manager",
				"Initiate ongoing case management services",
				"Provide required documentation to referring parties",
				"Begin wraparound support services",
			},
			CommonDelays: []string{
				"Support team coordination delays",
				"Applicant adjustment period",
				"Documentation completion",
			},
			NextSteps: "Ongoing case management and housing retention support",
			Tips: []string{
				"Communication between all parties is crucial",
				"Transition support helps ensure housing stability",
				"Document successful placement for reporting",
			},
			Documents: []models.StageDocument{
				{Name: "Wraparound Support Intake Packet", Filename: "0 INTAKE PACKET FINAL VIBRANT.pdf", Description: "Final intake packet for wraparound support services", Required: true},
			},
		},
	}
}
