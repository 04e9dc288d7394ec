package mailer

import (
	"fmt"
	"strings"

	"github.com/Ravindra230104/EduGather-server/internal/models"
)

func ActivationEmail(clientURL, to, token string) Email {
	return Email{
		To:      to,
		Subject: "Complete your registration",
		HTMLBody: fmt.Sprintf(`
            <html>
               <h1>Verify your Email address</h1>
               <p>Please use the following link to complete your registration:</p>
               <p>%s/auth/activate/%s</p>
            </html>`, clientURL, token),
	}
}

func ResetEmail(clientURL, to, token string) Email {
	return Email{
		To:      to,
		Subject: "Reset your password",
		HTMLBody: fmt.Sprintf(`
            <html>
               <h1>Reset Password Link</h1>
               <p>Please use the following link to reset your password:</p>
               <p>%s/auth/password/reset/%s</p>
            </html>`, clientURL, token),
	}
}

// LinkPublishedEmail is the digest sent to every subscriber of the link's
// categories, with an unsubscribe pointer to the profile page.
func LinkPublishedEmail(clientURL, to string, link models.Link, categories []models.Category) Email {
	var sections strings.Builder
	for i, c := range categories {
		if i > 0 {
			sections.WriteString("----------------------")
		}
		fmt.Fprintf(&sections, `
                   <div>
                       <h2>%s</h2>
                       <img src="%s" alt="%s" style="height:50px"/>
                       <h3><a href="%s/links/%s">Check it out!</a></h3>
                   </div>`, c.Name, c.ImageURL, c.Name, clientURL, c.Slug)
	}

	return Email{
		To:      to,
		Subject: "New link published",
		HTMLBody: fmt.Sprintf(`
            <html>
               <body>
                   <h1>New Link Published</h1>
                   <p>New link titled <b>%s</b> has been just published in the following categories:</p>
                   %s
                   <br/>
                   <p>Do not wish to receive notifications?</p>
                   <p>Turn off notifications by going to your <b>dashboard</b> > <b>update profile</b> and <b>uncheck the categories</b></p>
                   <p><a href="%s/user/profile/update">%s/user/profile/update</a></p>
               </body>
            </html>`, link.Title, sections.String(), clientURL, clientURL),
	}
}
